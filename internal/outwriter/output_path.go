package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintPathResults outputs the contribution path, dispatching based on the
// output format configured.
func PrintPathResults(path schema.ContributionPath, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, path)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePathCSV(w, path, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePathTable(w, path, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

func writePathTable(w io.Writer, path schema.ContributionPath, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if len(path.Steps) == 0 {
		_, err := fmt.Fprintln(w, "No contribution path: no file cleared the suitability threshold.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Step", "Path", "Adjusted", "Effort", "Est", "After", "Milestone"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range path.Steps {
		milestone := ""
		if s.Milestone {
			milestone = "*"
		}
		data = append(data, []string{
			fmt.Sprintf(intFmt, s.Rank),
			contract.TruncatePath(s.Path, getMaxTablePathWidth(cfg)),
			fmtFloat(s.AdjustedComplexity),
			fmt.Sprintf(intFmt, s.EffortScore),
			string(s.Effort),
			strings.Join(s.DependsOn, ", "),
			milestone,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if !path.TargetMet {
		if _, err := fmt.Fprintf(w, "Path is shorter than requested (%s)\n", path.Reason); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Planned %d steps in %v\n", len(path.Steps), duration)
	return err
}

func writePathCSV(w io.Writer, path schema.ContributionPath, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"step", "file", "language", "adjusted_complexity", "effort_score", "effort", "depends_on", "milestone"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range path.Steps {
			rec := []string{
				fmt.Sprintf(intFmt, s.Rank),
				s.Path,
				s.Language,
				fmtFloat(s.AdjustedComplexity),
				fmt.Sprintf(intFmt, s.EffortScore),
				string(s.Effort),
				strings.Join(s.DependsOn, "|"),
				strconv.FormatBool(s.Milestone),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
