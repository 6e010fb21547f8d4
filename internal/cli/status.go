package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhph/orderflow/internal/control"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check reachability of the configured stores",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	app, err := control.NewService(serviceConfig(cfg))
	if err != nil {
		slog.Error("Failed to initialize service", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health := app.Health(ctx)
	names := make([]string, 0, len(health))
	for name := range health {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	for _, name := range names {
		fmt.Printf("%-10s %s\n", name, health[name])
		if health[name] != "ok" {
			healthy = false
		}
	}
	if !healthy {
		os.Exit(1)
	}
}
