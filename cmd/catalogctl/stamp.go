// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"catalogctl/internal/stamp"

	"github.com/spf13/cobra"
)

var (
	stampSHA string

	stampCmd = &cobra.Command{
		Use:   "stamp",
		Short: "Replace the commit placeholder with the short revision id",
		Long: `Walk the repository and replace the configured placeholder token with
the current commit's short SHA in every matching file. The SHA comes
from --sha, then $GIT_SHA, then git rev-parse.`,
		RunE: runStamp,
	}
)

func init() {
	stampCmd.Flags().StringVar(&stampSHA, "sha", "", "revision id to stamp (default: $GIT_SHA or git rev-parse)")
}

func runStamp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := stamp.Run(stamp.Options{
		RepoRoot:    repoRoot,
		Placeholder: cfg.Stamp.Placeholder,
		Extensions:  cfg.Stamp.Extensions,
		SHA:         stampSHA,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Stamped) == 0 {
		fmt.Fprintf(out, "%s\n", SubtitleStyle.Render("No placeholders found to stamp."))
		return nil
	}

	for _, rel := range result.Stamped {
		fmt.Fprintf(out, "%s %s -> %s\n", SuccessStyle.Render("Stamped"), PathStyle.Render(rel), result.SHA)
	}
	fmt.Fprintf(out, "%s %d file(s)\n", SubtitleStyle.Render("Total:"), len(result.Stamped))
	return nil
}
