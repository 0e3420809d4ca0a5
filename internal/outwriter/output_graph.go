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

// PrintGraphResults outputs the structural view: graph counts, circular
// components and the centrality ranking.
func PrintGraphResults(summary schema.GraphSummary, central []schema.FileAssessment, diag schema.RunDiagnostics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGraphJSON(w, summary, central, diag)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGraphCSV(w, central, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGraphText(w, summary, central, diag, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeGraphText(w io.Writer, summary schema.GraphSummary, central []schema.FileAssessment, diag schema.RunDiagnostics, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Nodes: %d internal, %d external. Edges: %d internal, %d external.\n",
		summary.InternalNodes, summary.ExternalNodes, summary.InternalEdges, summary.ExternalEdges); err != nil {
		return err
	}
	if diag.Graph.MalformedEdges+diag.Graph.UnknownSources+diag.Graph.DuplicateEdges > 0 {
		if _, err := fmt.Fprintf(w, "Dropped edges: %d malformed, %d unknown source, %d duplicate\n",
			diag.Graph.MalformedEdges, diag.Graph.UnknownSources, diag.Graph.DuplicateEdges); err != nil {
			return err
		}
	}

	if len(summary.CircularComponents) == 0 {
		if _, err := fmt.Fprintln(w, "No circular dependencies detected."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Circular dependency groups: %d\n", len(summary.CircularComponents)); err != nil {
			return err
		}
		for i, component := range summary.CircularComponents {
			if _, err := fmt.Fprintf(w, "  [%d] %s\n", i+1, strings.Join(component, " -> ")); err != nil {
				return err
			}
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Centrality", "Impact", "Cycle"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, f := range central {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, getMaxTablePathWidth(cfg)),
			fmtFloat(f.Centrality),
			contract.GetImpactLabel(f.HighImpact, cfg.UseColors),
			strconv.FormatBool(f.InCycle),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Analysis completed in %v (%d centrality rounds)\n", duration, diag.CentralityRounds)
	return err
}

func writeGraphCSV(w io.Writer, central []schema.FileAssessment, fmtFloat func(float64) string) error {
	header := []string{"rank", "file", "centrality", "high_impact", "in_cycle", "component_id"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range central {
			rec := []string{
				strconv.Itoa(i + 1),
				f.Path,
				fmtFloat(f.Centrality),
				strconv.FormatBool(f.HighImpact),
				strconv.FormatBool(f.InCycle),
				strconv.Itoa(f.ComponentID),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeGraphJSON(w io.Writer, summary schema.GraphSummary, central []schema.FileAssessment, diag schema.RunDiagnostics) error {
	output := struct {
		Graph       schema.GraphSummary     `json:"graph"`
		Central     []schema.FileAssessment `json:"central_files"`
		Diagnostics schema.RunDiagnostics   `json:"diagnostics"`
	}{Graph: summary, Central: central, Diagnostics: diag}
	return writeJSON(w, output)
}
