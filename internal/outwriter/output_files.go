package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/parquet"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAssessments outputs the ranked assessments, dispatching based on the
// output format configured.
func PrintAssessments(files []schema.FileAssessment, diag schema.RunDiagnostics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentJSON(w, files, diag)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentCSV(w, files, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.ExportAssessments(cfg.OutputFile, files)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentTable(files, diag, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeAssessmentTable generates and writes the human-readable table.
func writeAssessmentTable(files []schema.FileAssessment, diag schema.RunDiagnostics, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Path", "Suitability", "Tier"}
	if cfg.Detail {
		headers = append(headers, "Centrality", "Complexity", "Adjusted", "Level", "Deps")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, f := range files {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(f.Path, getMaxTablePathWidth(cfg)),   // File
			fmtFloat(f.Suitability),                                    // Suitability
			contract.GetSuitabilityLabel(f.SuitabilityTier, cfg.UseColors), // Tier
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(f.Centrality),                 // Centrality
				fmtFloat(f.Complexity),                 // Complexity
				fmtFloat(f.AdjustedComplexity),         // Adjusted
				string(f.SkillLevel),                   // Level
				fmt.Sprintf(intFmt, f.DependencyCount), // Deps
			)
		}
		if cfg.Explain {
			row = append(row, formatTopBreakdown(&f, fmtFloat))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d files (excluded: %d, invalid skills: %d)\n",
		len(files), diag.ExcludedFiles, diag.InvalidSkills); err != nil {
		return err
	}
	if diag.NotConverged {
		if _, err := fmt.Fprintf(writer, "Centrality stopped at the iteration cap (%d rounds); scores carry reduced confidence\n",
			diag.CentralityRounds); err != nil {
			return err
		}
	}
	if diag.Canceled {
		if _, err := fmt.Fprintln(writer, "Run was canceled; results are partial"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeAssessmentCSV writes the assessments in CSV format.
func writeAssessmentCSV(w io.Writer, files []schema.FileAssessment, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"file",
		"language",
		"suitability",
		"tier",
		"centrality",
		"complexity",
		"adjusted_complexity",
		"skill_level",
		"risk_score",
		"risk_tier",
		"in_cycle",
		"dependency_count",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range files {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Path,
				f.Language,
				fmtFloat(f.Suitability),
				string(f.SuitabilityTier),
				fmtFloat(f.Centrality),
				fmtFloat(f.Complexity),
				fmtFloat(f.AdjustedComplexity),
				string(f.SkillLevel),
				fmtFloat(f.RiskScore),
				string(f.RiskTier),
				strconv.FormatBool(f.InCycle),
				fmt.Sprintf(intFmt, f.DependencyCount),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeAssessmentJSON writes the assessments in JSON format.
func writeAssessmentJSON(w io.Writer, files []schema.FileAssessment, diag schema.RunDiagnostics) error {
	// 1. Prepare the data structure for JSON with rank added
	type JSONAssessment struct {
		Rank int `json:"rank"`
		schema.FileAssessment
	}

	output := struct {
		Files       []JSONAssessment      `json:"files"`
		Diagnostics schema.RunDiagnostics `json:"diagnostics"`
	}{
		Files:       make([]JSONAssessment, len(files)),
		Diagnostics: diag,
	}
	for i, f := range files {
		output.Files[i] = JSONAssessment{Rank: i + 1, FileAssessment: f}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
