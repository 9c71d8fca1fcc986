package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ZramManager/internal/swap"
	"ZramManager/internal/utils/daemon"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the zram swap manager",
	Long: `Check if the zram swap manager is running and, when its HTTP server is enabled,
print the last control loop decision.`,
	Run: func(cmd *cobra.Command, args []string) {
		running, pid := daemon.GetStatus(pidFile)
		if !running {
			fmt.Println("zram_manager is not running")
			return
		}
		fmt.Printf("zram_manager is running (PID: %d)\n", pid)

		cfg, err := loadConfig(cmd)
		if err != nil || !cfg.Server.Enabled {
			return
		}

		url := fmt.Sprintf("http://%s:%d/api/swap/status", cfg.Server.Host, cfg.Server.Port)
		summary, err := fetchStatus(url)
		if err != nil {
			fmt.Printf("Status API unavailable: %v\n", err)
			return
		}
		printSummary(summary)
	},
}

func fetchStatus(url string) (*swap.StatusSummary, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response %s", resp.Status)
	}

	var body struct {
		Status swap.StatusSummary `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &body.Status, nil
}

func printSummary(s *swap.StatusSummary) {
	fmt.Printf("Running since %s, %d ticks\n", s.StartedAt.Format(time.RFC3339), s.Ticks)
	for _, action := range []swap.Action{swap.ActionCreate, swap.ActionRetire, swap.ActionNone, swap.ActionSkipped} {
		fmt.Printf("  %-8s %d\n", action, s.Actions[action])
	}

	last := s.LastReport
	if last == nil {
		return
	}
	fmt.Printf("Last tick: %s, available memory %s\n",
		last.Action, units.HumanSize(float64(last.AvailableMemory)))
	if last.Error != "" {
		fmt.Printf("Last error: %s\n", last.Error)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
