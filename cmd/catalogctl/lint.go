// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"catalogctl/internal/lint"
	"catalogctl/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	lintSyntax bool
	lintTrack  bool

	lintCmd = &cobra.Command{
		Use:   "lint",
		Short: "Fail when scripts lack synopsis headers",
		Long: `Check every script under the configured roots for the synopsis header
its dialect requires. Exits non-zero and lists the offenders when any
are missing.

With --track, a tracking issue in the configured GitHub repository is
kept in sync: created or refreshed while findings exist, closed once
the tree is clean. Credentials come from GITHUB_TOKEN and
GITHUB_REPOSITORY (a .env file is honored).`,
		RunE: runLint,
	}
)

func init() {
	lintCmd.Flags().BoolVar(&lintSyntax, "syntax", false, "also report shell scripts that fail to parse")
	lintCmd.Flags().BoolVar(&lintTrack, "track", false, "sync a tracking issue with the findings")
}

func runLint(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := lint.Run(lint.Options{
		RepoRoot:    repoRoot,
		Roots:       cfg.Roots,
		Dialects:    dialectTable(cfg),
		CheckSyntax: lintSyntax,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if lintTrack {
		if err := syncTrackingIssue(cmd, cfg.Tracker.APIBaseURL, cfg.Tracker.Repository, cfg.Tracker.IssueTitle, result); err != nil {
			return err
		}
	}

	if result.OK() {
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("OK"), result.Summary())
		return nil
	}

	fmt.Fprintf(out, "%s synopsis check failed for %d of %d scripts:\n\n",
		ErrorStyle.Render("FAIL"), len(result.Findings), result.Total)
	for _, f := range result.Findings {
		fmt.Fprintf(out, "  %s %s\n", PathStyle.Render(f.Rel), SubtitleStyle.Render("— "+f.Reason))
	}
	fmt.Fprintf(out, "\nAdd a short synopsis header to each script listed above.\n")

	return &ExitError{Code: 1, Err: fmt.Errorf("%d scripts missing synopsis headers", len(result.Findings))}
}

// syncTrackingIssue reconciles the configured tracking issue with the result.
func syncTrackingIssue(cmd *cobra.Command, baseURL, repository, title string, result *lint.Result) error {
	client, err := tracker.NewFromEnv(baseURL, repository)
	if err != nil {
		return fmt.Errorf("tracking issue: %w", err)
	}

	sync, err := client.Sync(cmd.Context(), title, result.Summary(), result.OK())
	if err != nil {
		return fmt.Errorf("tracking issue: %w", err)
	}

	if sync.Action != "none" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s tracking issue #%d %s\n",
			SubtitleStyle.Render("Tracker:"), sync.Number, sync.Action)
	}
	return nil
}
