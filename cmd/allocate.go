package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"ZramManager/internal/utils/allocate"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

var (
	allocateGB    int
	allocateChunk int
	allocateHold  time.Duration
)

// allocateCmd consumes memory to exercise the swap manager
var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate memory to test the swap manager",
	Long: `Allocate and touch the requested amount of memory, hold it, then release it.
Run it next to the manager to watch swap devices being created and removed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if allocateGB <= 0 || allocateChunk <= 0 {
			fmt.Println("--gb and --chunk-mb must be positive")
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		total := uint64(allocateGB) * units.GB
		fmt.Printf("Allocating %s\n", units.HumanSize(float64(total)))

		block, err := allocate.Allocate(ctx, total, uint64(allocateChunk)*units.MB, func(n uint64) {
			fmt.Printf("\rAllocated %s", units.HumanSize(float64(n)))
		})
		fmt.Println()
		if err != nil {
			fmt.Printf("Allocation interrupted: %v\n", err)
		}

		fmt.Printf("Holding %s for %s\n", units.HumanSize(float64(block.Size())), allocateHold)
		select {
		case <-ctx.Done():
		case <-time.After(allocateHold):
		}

		runtime.KeepAlive(block)
		fmt.Println("Exiting")
	},
}

func init() {
	rootCmd.AddCommand(allocateCmd)
	allocateCmd.Flags().IntVar(&allocateGB, "gb", 1, "Memory to allocate in GB")
	allocateCmd.Flags().IntVar(&allocateChunk, "chunk-mb", 500, "Size of a single allocation in MB")
	allocateCmd.Flags().DurationVar(&allocateHold, "hold", 30*time.Second, "How long to hold the memory")
}
