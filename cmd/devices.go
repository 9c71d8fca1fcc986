package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"ZramManager/internal/services/zram"
	"ZramManager/internal/swap"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

// devicesCmd lists the managed swap devices
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List active zram swap devices",
	Long:  `List the active zram swap devices, smallest first. The first one is the next to be removed.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		timeout := time.Duration(cfg.Swap.BackendTimeout) * time.Second
		if timeout <= 0 {
			timeout = swap.DefaultBackendTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		backend := zram.NewBackend(zram.CommandsFromConfig(cfg.Swap.Commands), nil)
		devices, err := swap.NewRegistry(backend).List(ctx)
		if err != nil {
			fmt.Printf("Failed to list swap devices: %v\n", err)
			os.Exit(1)
		}

		if len(devices) == 0 {
			fmt.Println("No zram swap device is active")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tSIZE\tBYTES")
		var total uint64
		for _, d := range devices {
			total += d.SizeBytes
			fmt.Fprintf(w, "%s\t%s\t%d\n", d.Path, units.HumanSize(float64(d.SizeBytes)), d.SizeBytes)
		}
		fmt.Fprintf(w, "TOTAL\t%s\t%d\n", units.HumanSize(float64(total)), total)
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
