package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd(build ServiceBuilder) *cobra.Command {
	var (
		source       string
		maxRecords   int
		clusters     int
		analysisType string
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a full or partial analysis of the corpus",
		Example: "  insights analyze --source ./case_studies.json --type themes\n" +
			"  cat export.jsonl | insights analyze --source - -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := insights.ParseAnalysisType(analysisType)
			if err != nil {
				return err
			}
			opts := insights.Options{MaxRecords: maxRecords, ClusterCount: clusters, AnalysisType: t}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}

			return withService(cmd, build, source, func(ctx context.Context, cc *CLIContext, svc insights.Service) error {
				res := svc.Analyze(ctx, opts)
				if err := PrintResult(cmd, cc, res); err != nil {
					return err
				}
				if !res.Success {
					return errors.New(res.Code, res.Error)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&source, "source", "", "case-study source: file path, http(s) URL or - for stdin (default: configured content store)")
	f.IntVar(&maxRecords, "max-records", 0, "maximum case studies to analyse (default: configured)")
	f.IntVar(&clusters, "clusters", 0, "number of clusters (default: derived from corpus size)")
	f.StringVar(&analysisType, "type", string(insights.AnalysisFull), "analysis type (full, themes, patterns, outcomes, graph)")
	f.Int64Var(&seed, "seed", 0, "seed for reproducible clustering")
	return cmd
}

//Personal.AI order the ending
