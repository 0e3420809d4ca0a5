package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRiskResults outputs the risk-ranked assessments, dispatching based on
// the output format configured.
func PrintRiskResults(files []schema.FileAssessment, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, files)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskCSV(w, files, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskTable(w, files, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeRiskTable(w io.Writer, files []schema.FileAssessment, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Path", "Risk", "Tier", "Impact"}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, f := range files {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, getMaxTablePathWidth(cfg)),
			fmtFloat(f.RiskScore),
			contract.GetRiskLabel(f.RiskTier, cfg.UseColors),
			contract.GetImpactLabel(f.HighImpact, cfg.UseColors),
		}
		if cfg.Explain {
			row = append(row, formatTopBreakdown(&f, fmtFloat))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "Completed in "+duration.String()+"\n")
	return err
}

func writeRiskCSV(w io.Writer, files []schema.FileAssessment, fmtFloat func(float64) string) error {
	header := []string{"rank", "file", "risk_score", "risk_tier", "high_impact", "centrality", "complexity", "skill_confidence"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range files {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Path,
				fmtFloat(f.RiskScore),
				string(f.RiskTier),
				strconv.FormatBool(f.HighImpact),
				fmtFloat(f.Centrality),
				fmtFloat(f.Complexity),
				fmtFloat(f.SkillConfidence),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
