package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rotisserie/eris"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

var (
	catalogCategory string
	catalogRegion   string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog candidates per category and region",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		region, err := parseRegion(catalogRegion)
		if err != nil {
			return err
		}

		cats := model.AllCategories()
		if catalogCategory != "" {
			cat, ok := model.ParseCategory(catalogCategory)
			if !ok {
				return eris.Errorf("unknown category %q", catalogCategory)
			}
			cats = []model.Category{cat}
		}

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tID\tNAME\tPRICE\tAVAILABILITY\tTREND\tSOURCE")
		for _, cat := range cats {
			cands, err := e.Registry.Candidates(ctx, cat, region)
			if err != nil {
				return err
			}
			for _, c := range cands {
				price, _ := c.Price(region)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%d\n",
					c.Category, c.ID, c.Name, price, c.Availability, c.Trend, c.SourceTier)
			}
		}
		return w.Flush()
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "restrict to one category")
	catalogCmd.Flags().StringVar(&catalogRegion, "region", "US", "market region code")
	rootCmd.AddCommand(catalogCmd)
}
