package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a decision file and print the ranking",
	Long:  "Reads a YAML decision (name, criteria, options), ranks the options and optionally saves the snapshot to history.",
	RunE:  runScore,
}

var (
	scoreFile    string
	scoreSave    bool
	scoreJSON    bool
	scoreExplain bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Path to decision YAML file (required)")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "Save the scored decision to history")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print results as JSON")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Print the per-criterion breakdown")

	if err := scoreCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadCLI()
	if err != nil {
		return err
	}
	draft, err := loadDraft(scoreFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	results, err := a.svc.Score(ctx, draft)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var savedID string
	if scoreSave {
		snap, err := a.svc.Save(ctx, draft, results)
		if err != nil {
			return err
		}
		savedID = snap.ID
	}

	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"decisionName": draft.DecisionName,
			"results":      results,
			"id":           savedID,
		})
	}

	fmt.Fprintf(out, "%s\n\n", draft.DecisionName)
	if err := printRanking(out, results); err != nil {
		return err
	}
	if scoreExplain {
		explanations, err := a.svc.Explain(draft)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		if err := printExplanations(out, explanations); err != nil {
			return err
		}
	}
	if savedID != "" {
		fmt.Fprintf(out, "\nSaved as %s\n", savedID)
	}
	return nil
}

func printRanking(w io.Writer, results []scoring.ScoredOption) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tOPTION\tSCORE")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, r.Name, strconv.FormatFloat(r.Score, 'f', 1, 64))
	}
	return tw.Flush()
}

func printExplanations(w io.Writer, explanations []scoring.Explanation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OPTION\tCRITERION\tRAW\tNORMALIZED\tWEIGHT\tWEIGHTED")
	for _, e := range explanations {
		for _, c := range e.Contributions {
			raw := strconv.FormatFloat(c.Raw, 'f', -1, 64)
			if !c.Entered {
				raw += " (missing)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%s\t%.2f\n",
				e.OptionName, c.Criterion, raw, c.Normalized, strconv.FormatFloat(c.Weight, 'f', -1, 64), c.Weighted)
		}
	}
	return tw.Flush()
}
