package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
)

func NewSimilarCmd(build ServiceBuilder) *cobra.Command {
	var (
		source     string
		target     string
		top        int
		maxRecords int
	)

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Rank case studies by similarity to one target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := insights.SimilarRequest{TargetID: target, TopN: top, MaxRecords: maxRecords}
			return withService(cmd, build, source, func(ctx context.Context, cc *CLIContext, svc insights.Service) error {
				resp, err := svc.FindSimilar(ctx, req)
				if err != nil {
					return err
				}
				return PrintResult(cmd, cc, resp)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&source, "source", "", "case-study source: file path, http(s) URL or - for stdin")
	f.StringVar(&target, "target", "", "id of the target case study [REQUIRED]")
	f.IntVar(&top, "top", insights.DefaultSimilarTopN, "number of matches")
	f.IntVar(&maxRecords, "max-records", 0, "maximum case studies to compare (default: configured)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

//Personal.AI order the ending
