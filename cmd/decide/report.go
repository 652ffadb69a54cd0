package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Decide/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a decision report as Markdown, HTML or PDF",
	Long: `Renders a printable report for a decision file, or for a saved decision
when --id is given. The format follows the output extension unless --format is set.`,
	RunE: runReport,
}

var (
	reportFile   string
	reportID     string
	reportOutput string
	reportFormat string
)

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "Path to decision YAML file")
	reportCmd.Flags().StringVar(&reportID, "id", "", "Render a saved decision instead of a file")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output path (required)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "Output format: md, html or pdf")

	if err := reportCmd.MarkFlagRequired("output"); err != nil {
		panic(fmt.Sprintf("failed to mark output flag as required: %v", err))
	}
	reportCmd.MarkFlagsMutuallyExclusive("file", "id")
	reportCmd.MarkFlagsOneRequired("file", "id")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadCLI()
	if err != nil {
		return err
	}

	format := reportFormat
	if format == "" {
		format = report.FormatFromPath(reportOutput)
	}
	renderer, err := report.ForFormat(format, report.Options{
		ChromePath: cfg.Report.ChromePath,
		PDFTimeout: cfg.PDFTimeout(),
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	var in report.Input
	if reportID != "" {
		d, err := a.svc.Get(ctx, reportID)
		if err != nil {
			return fmt.Errorf("load decision %s: %w", reportID, err)
		}
		in = report.Input{DecisionName: d.DecisionName, Criteria: d.Criteria, Options: d.Options, Results: d.Results}
	} else {
		draft, err := loadDraft(reportFile)
		if err != nil {
			return err
		}
		results, err := a.svc.Score(ctx, draft)
		if err != nil {
			return err
		}
		in = report.Input{DecisionName: draft.DecisionName, Criteria: draft.Criteria, Options: draft.Options, Results: results}
	}
	in.GeneratedAt = time.Now()

	body, err := renderer.Render(ctx, in)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(reportOutput, body, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	a.metrics.ReportsRendered.WithLabelValues(renderer.Extension()).Inc()

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", reportOutput, len(body))
	return nil
}
