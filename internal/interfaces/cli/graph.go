package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
)

func NewGraphCmd(build ServiceBuilder) *cobra.Command {
	var (
		source string
		req    insights.GraphRequest
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the knowledge graph of the corpus",
		Long: "Build the case-study / dimension / keyword graph. By default each case\n" +
			"study links to its top 3 neighbours above the threshold; --full links every\n" +
			"pair above it. --export writes the graph to Neo4j when neo4j.enabled is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, build, source, func(ctx context.Context, cc *CLIContext, svc insights.Service) error {
				resp, err := svc.BuildGraph(ctx, req)
				if err != nil {
					return err
				}
				return PrintResult(cmd, cc, resp)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&source, "source", "", "case-study source: file path, http(s) URL or - for stdin")
	f.BoolVar(&req.Full, "full", false, "link every pair above the threshold")
	f.Float64Var(&req.Threshold, "threshold", 0, "similarity threshold in [0, 1) (default: 0.5)")
	f.BoolVar(&req.Export, "export", false, "export the graph to Neo4j")
	f.IntVar(&req.MaxRecords, "max-records", 0, "maximum case studies (default: configured)")
	return cmd
}

//Personal.AI order the ending
