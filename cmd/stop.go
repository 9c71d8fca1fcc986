package cmd

import (
	"fmt"
	"os"

	"ZramManager/internal/utils/daemon"

	"github.com/spf13/cobra"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the zram swap manager",
	Long: `Stop the running zram swap manager daemon. Swap devices it created stay
active; they are removed by the next run once memory is plentiful.`,
	Run: func(cmd *cobra.Command, args []string) {
		pid, err := daemon.StopProcess(pidFile)
		if err != nil {
			fmt.Printf("Failed to stop zram_manager: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("zram_manager (PID: %d) has been stopped\n", pid)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
