package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhph/orderflow/internal/control"
	"github.com/minhph/orderflow/internal/orchestrate"
)

var processCmd = &cobra.Command{
	Use:   "process <order-id>",
	Short: "Process a single order and print the outcome",
	Args:  cobra.ExactArgs(1),
	Run:   runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := app.Orchestrator().ProcessOrder(ctx, args[0])
	// Let in-flight optional effects finish before exiting.
	app.Orchestrator().Wait()

	if err != nil {
		var failure *orchestrate.Failure
		if errors.As(err, &failure) {
			fmt.Fprintln(os.Stderr, "Processing failed:")
			for _, cause := range failure.Causes {
				fmt.Fprintf(os.Stderr, "  - %s\n", cause)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		}
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
