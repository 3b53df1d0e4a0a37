package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Ankaaflow/pc-builder-sub000/internal/model"
)

var (
	checkFile   string
	checkRegion string
	checkJSON   bool
)

// checkFileFormat is the YAML shape accepted by `check`: a region plus a
// list of catalog component IDs or names, e.g. a user-edited build.
type checkFileFormat struct {
	Region     string   `yaml:"region"`
	Components []string `yaml:"components"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Re-run the compatibility report over an existing build",
	Long:  "Reads a build file (region + component IDs or names), resolves the parts against the catalog, and reports compatibility without re-running selection.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(checkFile)
		if err != nil {
			return eris.Wrapf(err, "read %s", checkFile)
		}
		var file checkFileFormat
		if err := yaml.Unmarshal(data, &file); err != nil {
			return eris.Wrap(err, "parse build file")
		}
		if file.Region == "" {
			file.Region = checkRegion
		}
		region, err := parseRegion(file.Region)
		if err != nil {
			return err
		}

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		build := model.NewBuild(0, region)
		for _, ref := range file.Components {
			c, err := findComponent(ctx, e.Registry, ref, region)
			if err != nil {
				return err
			}
			if build.Component(c.Category) != nil {
				return eris.Errorf("duplicate %s in build file: %s", c.Category, ref)
			}
			build.Set(c)
		}

		rep := e.Reporter.Report(ctx, build)

		if checkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		printReport(rep)
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkFile, "file", "", "path to build YAML (required)")
	checkCmd.Flags().StringVar(&checkRegion, "region", "US", "region fallback when the file omits one")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit JSON instead of text")
	_ = checkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(checkCmd)
}
