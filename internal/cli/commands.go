package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ragdemo/internal/service"
)

func newSetupCmd(run serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the index and load the corpus",
		Long: `Creates the vector index if it does not exist (waiting for it to
initialize), then splits, embeds and upserts every document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc service.RAGService) error {
				out := cmd.OutOrStdout()
				result, err := svc.Setup(ctx)
				if err != nil {
					return fmt.Errorf("setup failed: %w", err)
				}

				fmt.Fprintln(out, result.Message)
				fmt.Fprintf(out, "  run:       %s\n", result.Run.ID)
				fmt.Fprintf(out, "  documents: %d\n", result.Report.Documents)
				fmt.Fprintf(out, "  chunks:    %d\n", result.Report.Chunks)
				fmt.Fprintf(out, "  upserted:  %d\n", result.Report.Upserted)
				for _, f := range result.Report.FailedBatches {
					fmt.Fprintf(out, "  failed batch %s #%d (%s..%s): %s\n", f.Source, f.BatchIndex, f.FirstID, f.LastID, f.Err)
				}
				return nil
			})
		},
	}
}

func newAskCmd(run serviceRunner) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question from the indexed corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			return run(cmd, func(ctx context.Context, svc service.RAGService) error {
				out := cmd.OutOrStdout()
				resp, err := svc.Ask(ctx, service.AskRequest{Question: question})
				if err != nil {
					return fmt.Errorf("ask failed: %w", err)
				}

				if asJSON {
					data, err := json.MarshalIndent(map[string]any{"data": resp.Answer, "sources": resp.Sources}, "", "  ")
					if err != nil {
						return fmt.Errorf("failed to marshal answer: %w", err)
					}
					fmt.Fprintln(out, string(data))
					return nil
				}

				if resp.Answer == nil {
					fmt.Fprintln(out, "No relevant passages found.")
					return nil
				}
				fmt.Fprintln(out, *resp.Answer)
				if len(resp.Sources) > 0 {
					fmt.Fprintln(out)
					fmt.Fprintln(out, "Sources:")
					for i, s := range resp.Sources {
						fmt.Fprintf(out, "  [%d] %s (%.2f)\n", i+1, s.Path, s.Score)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the answer as JSON")
	return cmd
}

func newRunsCmd(run serviceRunner) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent setup runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc service.RAGService) error {
				out := cmd.OutOrStdout()
				runs, err := svc.RecentRuns(ctx, limit)
				if err != nil {
					return fmt.Errorf("failed to list runs: %w", err)
				}
				if len(runs) == 0 {
					fmt.Fprintln(out, "No setup runs recorded.")
					return nil
				}
				for _, r := range runs {
					fmt.Fprintf(out, "%s  %s  %-21s  docs=%d chunks=%d upserted=%d failed_batches=%d\n",
						r.StartedAt.Format("2006-01-02 15:04:05"), r.ID, r.Status,
						r.Documents, r.Chunks, r.Upserted, r.FailedBatches)
					if r.Error != "" {
						fmt.Fprintf(out, "    error: %s\n", r.Error)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultRunsLimit, "maximum number of runs")
	return cmd
}

func newRunCmd(run serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "run [id]",
		Short: "Show one setup run and its failed batches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc service.RAGService) error {
				out := cmd.OutOrStdout()
				detail, err := svc.Run(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get run: %w", err)
				}

				data, err := json.MarshalIndent(map[string]any{
					"run":            detail.Run,
					"failed_batches": detail.Failures,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal run: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			})
		},
	}
}
