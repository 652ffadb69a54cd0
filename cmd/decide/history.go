package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Decide/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved decisions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved decisions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved decision",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadCLI()
	if err != nil {
		return err
	}
	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	decisions, err := a.svc.List(ctx)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved decisions.")
		return nil
	}
	return printHistory(cmd.OutOrStdout(), decisions)
}

func printHistory(w io.Writer, decisions []*store.Decision) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSAVED\tDECISION\tBEST OPTION\tSCORE")
	for _, d := range decisions {
		best, score := "-", "-"
		if len(d.Results) > 0 {
			best = d.Results[0].Name
			score = strconv.FormatFloat(d.Results[0].Score, 'f', 1, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.CreatedAt.Time().Local().Format(time.DateTime), d.DecisionName, best, score)
	}
	return tw.Flush()
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadCLI()
	if err != nil {
		return err
	}
	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	deleted, err := a.svc.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s was already deleted\n", args[0])
	}
	return nil
}
