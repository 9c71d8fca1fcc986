package cmd

import (
	"fmt"
	"os"

	"ZramManager/internal/app"
	"ZramManager/internal/pkg/config"
	"ZramManager/internal/startup"
	"ZramManager/internal/utils/finder"

	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
	pidFile    = "/var/run/zram_manager.pid"

	minFree   int
	maxFree   int
	swapSize  int
	sleepTime int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zram_manager",
	Short: "Dynamic swap manager using zram",
	Long: `zram_manager keeps free memory between two thresholds by creating compressed
RAM swap devices when memory runs low and removing them when it is plentiful.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default logger for early startup
	startup.SetupDefaultLogger()

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "conf/config.yaml", "Path to configuration file")
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFilePath, "Optional file with ZRAM_MANAGER_* variables")
	flags.IntVar(&minFree, "minfree", 2, "Minimum free RAM in GB")
	flags.IntVar(&maxFree, "maxfree", 4, "Maximum free RAM in GB")
	flags.IntVar(&swapSize, "swapsize", 1, "Size of created swap in GB")
	flags.IntVar(&sleepTime, "sleeptime", 1, "Time between checks in seconds, a smaller value will increase the stability of the system")
}

// overrides returns the swap flags explicitly set on the command line
func overrides(cmd *cobra.Command) app.Overrides {
	var o app.Overrides
	flags := cmd.Flags()
	if flags.Changed("minfree") {
		o.MinFreeGB = &minFree
	}
	if flags.Changed("maxfree") {
		o.MaxFreeGB = &maxFree
	}
	if flags.Changed("swapsize") {
		o.SwapSizeGB = &swapSize
	}
	if flags.Changed("sleeptime") {
		o.SleepTime = &sleepTime
	}
	return o
}

// initApplication loads the configuration with the command line overrides applied
func initApplication(cmd *cobra.Command) *app.Application {
	return startup.InitializeApplication(configPath, envFile, overrides(cmd))
}

// loadConfig resolves the configuration without initializing the application
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := finder.FindConfigFile(configPath, false, finder.DefaultSearchPaths...)
	if err != nil {
		return nil, err
	}
	return app.ResolveConfig(path, envFile, overrides(cmd))
}
