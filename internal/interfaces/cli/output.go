package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// PrintResult writes data to stdout as indented JSON or as text.
func PrintResult(cmd *cobra.Command, cc *CLIContext, data any) error {
	out := cmd.OutOrStdout()
	if cc.OutputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	switch v := data.(type) {
	case *insights.Result:
		printAnalysis(out, v)
	case *insights.SimilarResponse:
		printSimilar(out, v)
	case *insights.GraphResponse:
		printGraph(out, v)
	case VersionInfo:
		fmt.Fprintf(out, "insights %s (commit %s, built %s, %s)\n", v.Version, v.Commit, v.BuildDate, v.GoVersion)
	default:
		fmt.Fprintf(out, "%+v\n", v)
	}
	return nil
}

// PrintError writes err to stderr, prefixed by its code when it has one.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

func printAnalysis(w io.Writer, res *insights.Result) {
	if !res.Success {
		fmt.Fprintf(w, "Analysis failed [%s]: %s\n", res.Code, res.Error)
		return
	}
	r := res.Report
	fmt.Fprintf(w, "Report %s (%s, %d case studies, %dms)\n",
		r.ReportID, r.Metadata.AnalysisType, r.Metadata.TotalCaseStudies, r.Metadata.DurationMs)
	if r.Metadata.Partial {
		fmt.Fprintln(w, "Partial report: some stages did not complete.")
	}

	rows := make([][]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		rows = append(rows, []string{string(s.Name), string(s.Status), strconv.FormatInt(s.DurationMs, 10), s.Error})
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, FormatTable([]string{"STAGE", "STATUS", "MS", "ERROR"}, rows))

	s := r.Summary
	fmt.Fprintln(w)
	if len(s.TopThemes) > 0 {
		fmt.Fprintf(w, "Top themes: %s\n", strings.Join(s.TopThemes, ", "))
	}
	fmt.Fprintf(w, "Clusters: %d  Emerging themes: %d  Average improvement: %.1f%%\n",
		s.ClusterCount, s.EmergingThemeCount, s.AverageImprovement)
	for _, imp := range s.KeyImplications {
		fmt.Fprintf(w, "  - %s\n", imp)
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  [%s] %s: %s\n", rec.Priority, rec.Title, rec.Description)
			for _, item := range rec.Items {
				fmt.Fprintf(w, "      * %s\n", item)
			}
		}
	}
}

func printSimilar(w io.Writer, resp *insights.SimilarResponse) {
	fmt.Fprintf(w, "Case studies similar to %s (%d compared)\n\n", resp.TargetID, resp.TotalCaseStudies)
	rows := make([][]string, 0, len(resp.Matches))
	for i, m := range resp.Matches {
		rows = append(rows, []string{strconv.Itoa(i + 1), m.ID, strconv.FormatFloat(m.Score, 'f', 4, 64), m.Title})
	}
	fmt.Fprint(w, FormatTable([]string{"RANK", "ID", "SCORE", "TITLE"}, rows))
}

func printGraph(w io.Writer, resp *insights.GraphResponse) {
	st := resp.Stats
	fmt.Fprintf(w, "Nodes: %d  Edges: %d  Components: %d (largest %d)\n",
		st.NodeCount, st.EdgeCount, st.Components, st.LargestComponent)
	fmt.Fprintf(w, "Density: %.4f  Average degree: %.2f\n", st.Density, st.AverageDegree)
	if resp.Exported {
		fmt.Fprintln(w, "Exported to Neo4j.")
	}
	if len(st.TopCaseStudies) > 0 {
		rows := make([][]string, 0, len(st.TopCaseStudies))
		for _, c := range st.TopCaseStudies {
			rows = append(rows, []string{c.ID, strconv.FormatFloat(c.Score, 'f', 4, 64), c.Label})
		}
		fmt.Fprintln(w, "\nMost central case studies:")
		fmt.Fprint(w, FormatTable([]string{"ID", "PAGERANK", "TITLE"}, rows))
	}
}

// FormatTable renders headers and rows as an aligned text table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// exitCode maps an error to a process exit status: 2 for input errors, 1
// otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsInputError(err), errors.IsCode(err, errors.ErrCodeBadRequest),
		errors.IsCode(err, errors.ErrCodeAnalysisTypeInvalid):
		return 2
	default:
		return 1
	}
}

// ExitCode is exitCode for main packages.
func ExitCode(err error) int { return exitCode(err) }

//Personal.AI order the ending
