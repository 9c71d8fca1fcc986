package cmd

import (
	"fmt"
	"os"

	"ZramManager/internal/pkg/logger"
	"ZramManager/internal/startup"
	"ZramManager/internal/utils/daemon"
	"ZramManager/internal/utils/signal"

	"github.com/spf13/cobra"
)

var (
	foreground bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the zram swap manager",
	Long:  `Start the zram swap manager in foreground or as a daemon.`,
	Run: func(cmd *cobra.Command, args []string) {
		if daemon.IsRunning(pidFile) {
			fmt.Printf("zram_manager is already running (PID file exists at %s)\n", pidFile)
			os.Exit(1)
		}

		isChild := daemon.IsChild()

		// The child is started with the same arguments
		if !foreground && !isChild {
			daemon.Daemonize(os.Args[1:])
			return
		}

		application := initApplication(cmd)

		builder := startup.StartServer(application)

		if isChild {
			if err := daemon.WritePIDFile(pidFile); err != nil {
				logger.Error("Failed to write PID file", logger.String("error", err.Error()))
			}
			signal.RegisterCleanupFunc(func() {
				daemon.RemovePIDFile(pidFile)
			})
		}

		signal.HandleSignals(application, builder)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (not as daemon)")
}
