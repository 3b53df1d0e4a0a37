package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ankaaflow/pc-builder-sub000/internal/compat"
	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
	"github.com/Ankaaflow/pc-builder-sub000/internal/selector"
)

var (
	buildBudget int
	buildRegion string
	buildJSON   bool
	buildSave   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Select a compatible build for a budget and region",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		region, err := parseRegion(buildRegion)
		if err != nil {
			return err
		}

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		result, err := e.Selector.Select(ctx, buildBudget, region)
		if err != nil {
			var nce *selector.NoCandidateError
			if eris.As(err, &nce) {
				return eris.Errorf("build failed at %s: %s (envelope %d, %d candidates considered)",
					nce.Category, nce.Reason, nce.Envelope, nce.Considered)
			}
			return err
		}

		if buildSave && e.Store != nil {
			payload, err := json.Marshal(result)
			if err != nil {
				return eris.Wrap(err, "marshal result")
			}
			id, err := e.Store.SaveBuild(ctx, string(region), buildBudget, payload)
			if err != nil {
				zap.L().Warn("could not save build", zap.Error(err))
			} else {
				zap.L().Info("build saved", zap.String("id", id))
			}
		}

		if buildJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printResult(result)
		return nil
	},
}

func printResult(result *selector.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tCOMPONENT\tPRICE\tENVELOPE")
	for _, cat := range model.AllCategories() {
		c := result.Build.Component(cat)
		if c == nil {
			reason := result.Skipped[cat]
			if reason == "" {
				reason = "unselected"
			}
			fmt.Fprintf(w, "%s\t-- %s --\t\t%d\n", cat, reason, result.Allocation.Envelope(cat))
			continue
		}
		price, _ := c.Price(result.Build.Region)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", cat, c.Name, price, result.Allocation.Envelope(cat))
	}
	w.Flush()

	fmt.Printf("\ntotal %d of %d budget, estimated draw %d W, recommended supply %d W\n",
		result.Build.TotalPrice(), result.Build.Budget,
		result.Report.PowerDrawWatts, result.Report.RecommendedWattage)
	printReport(result.Report)
}

func printReport(rep *compat.Report) {
	if rep.Compatible {
		fmt.Println("compatible: yes")
	} else {
		fmt.Println("compatible: NO")
	}
	for _, is := range rep.Issues {
		fmt.Printf("  [critical/%s] %s: %s\n", is.Type, is.Message, is.Details)
	}
	for _, is := range rep.Warnings {
		fmt.Printf("  [warning/%s] %s: %s\n", is.Type, is.Message, is.Details)
	}
	for _, is := range rep.Notes {
		fmt.Printf("  [note/%s] %s: %s\n", is.Type, is.Message, is.Details)
	}
}

var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "List saved builds",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		if e.Store == nil {
			return eris.New("no store configured")
		}
		saved, err := e.Store.ListBuilds(ctx, 50)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tREGION\tBUDGET\tCREATED")
		for _, sb := range saved {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", sb.ID, sb.Region, sb.Budget, sb.CreatedAt)
		}
		return w.Flush()
	},
}

func init() {
	buildCmd.Flags().IntVar(&buildBudget, "budget", 0, "total budget in regional currency units (required)")
	buildCmd.Flags().StringVar(&buildRegion, "region", "US", "market region code")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "emit JSON instead of a table")
	buildCmd.Flags().BoolVar(&buildSave, "save", false, "persist the result to the store")
	_ = buildCmd.MarkFlagRequired("budget")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(buildsCmd)
}
