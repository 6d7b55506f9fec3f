package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/c360studio/semreview/ingest"
	"github.com/c360studio/semreview/report"
	"github.com/c360studio/semreview/storage"
)

func init() {
	Register(newReportCommand)
}

func newReportCommand() *cobra.Command {
	var (
		list    bool
		rewrite bool
	)

	cmd := &cobra.Command{
		Use:   "report [project-id]",
		Short: "Show or regenerate the feedback report for an analyzed project",
		Long: `Report prints the stored markdown feedback report for a project.
With --rewrite the report artifacts are regenerated from the stored
analysis result; with --list the analyzed projects are listed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openResultStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if list {
				ids, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			if len(args) != 1 {
				return errors.New("name exactly one project id (or pass --list)")
			}
			projectID := args[0]
			rec, err := store.Get(cmd.Context(), projectID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("no analysis stored for %s; run analyze first", projectID)
				}
				return err
			}

			loader := ingest.New(cfg.Workspace.ProjectsDir, ingest.WithLogger(slog.Default()))
			project, err := loader.Load(projectID)
			if err != nil {
				return fmt.Errorf("load project %s: %w", projectID, err)
			}

			if rewrite {
				writer := report.NewWriter(cfg.Workspace.OutputDir, report.WithLogger(slog.Default()))
				paths, err := writer.Write(project, rec.Result)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", paths.Markdown)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.Render(project, rec.Result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List projects with stored analyses")
	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "Regenerate report artifacts from the stored result")
	return cmd
}
