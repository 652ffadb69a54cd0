package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Decide/internal/hermes"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print decision events published on hermes",
	RunE:  runWatch,
}

var watchSubject string

func init() {
	watchCmd.Flags().StringVar(&watchSubject, "subject", hermes.StreamSubjects, "Subject to subscribe to")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadCLI()
	if err != nil {
		return err
	}
	if cfg.Hermes.URL == "" {
		return fmt.Errorf("hermes url is not configured (set DECIDE_HERMES_URL)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	if err := client.Subscribe(watchSubject, func(subject string, data []byte) {
		fmt.Fprintf(out, "%s %s\n", subject, data)
	}); err != nil {
		return fmt.Errorf("subscribe %s: %w", watchSubject, err)
	}
	fmt.Fprintf(out, "Watching %s, press Ctrl+C to stop\n", watchSubject)

	<-ctx.Done()
	return nil
}
