// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"catalogctl/internal/catalog"
	"catalogctl/internal/config"
	"catalogctl/internal/synopsis"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	buildDryRun  bool
	buildPreview bool

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Regenerate the script catalog block in the target document",
		Long: `Scan the configured script roots, extract synopses, group the results
by category and subsection, and rewrite the marker-delimited catalog
block in the target document. The write is skipped when nothing changed,
so repeated runs are safe.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "print the rendered block instead of writing")
	buildCmd.Flags().BoolVar(&buildPreview, "preview", false, "render the block to the terminal as styled markdown")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := catalog.Build(buildOptions(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if buildPreview {
		rendered, renderErr := glamour.Render(result.Block, "dark")
		if renderErr != nil {
			return fmt.Errorf("render preview: %w", renderErr)
		}
		fmt.Fprint(out, rendered)
		return nil
	}

	if buildDryRun {
		fmt.Fprintln(out, result.Block)
		return nil
	}

	target := filepath.Join(repoRoot, cfg.Readme)
	changed, err := catalog.WriteDocument(target, result.Block, catalog.MergeOptions{
		StartMarker:   cfg.Markers.Start,
		EndMarker:     cfg.Markers.End,
		LegacyHeading: cfg.LegacyHeading,
		Title:         cfg.Title,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %d scripts cataloged, %d with synopses\n",
		SubtitleStyle.Render("Discovered:"), result.Total, result.WithSynopsis)
	if changed {
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("Updated"), PathStyle.Render(target))
	} else {
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("No changes needed for"), PathStyle.Render(target))
	}
	return nil
}

// buildOptions lowers the config into pipeline options.
func buildOptions(cfg *config.Config) catalog.BuildOptions {
	rules := make([]catalog.Rule, 0, len(cfg.Categories))
	for _, r := range cfg.Categories {
		rules = append(rules, catalog.Rule{Anchor: r.Anchor, Label: r.Label})
	}
	return catalog.BuildOptions{
		RepoRoot:       repoRoot,
		Roots:          cfg.Roots,
		Dialects:       dialectTable(cfg),
		Rules:          rules,
		DocDirs:        cfg.Docs.Dirs,
		FuzzyThreshold: cfg.Docs.FuzzyThreshold,
	}
}

// dialectTable lowers the config's extension lists into the dispatch table.
func dialectTable(cfg *config.Config) synopsis.Table {
	return synopsis.NewTable(
		cfg.Dialects.CommentHelp,
		cfg.Dialects.HashComment,
		cfg.Dialects.Docstring,
	)
}
