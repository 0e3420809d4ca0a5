package algo

import (
	"sort"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// RankBySuitability sorts assessments by suitability in descending order,
// ties broken by path, and returns the top 'limit' entries. If limit is
// greater than the number of assessments, all are returned in sorted order.
func RankBySuitability(files []schema.FileAssessment, limit int) []schema.FileAssessment {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Suitability != files[j].Suitability {
			return files[i].Suitability > files[j].Suitability
		}
		return files[i].Path < files[j].Path
	})
	if limit > 0 && len(files) > limit {
		return files[:limit]
	}
	return files
}

// RankByCentrality sorts assessments by centrality in descending order,
// ties broken by path, and returns the top 'limit' entries.
func RankByCentrality(files []schema.FileAssessment, limit int) []schema.FileAssessment {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Centrality != files[j].Centrality {
			return files[i].Centrality > files[j].Centrality
		}
		return files[i].Path < files[j].Path
	})
	if limit > 0 && len(files) > limit {
		return files[:limit]
	}
	return files
}

// RankByRisk sorts assessments by risk score in descending order, ties
// broken by path, and returns the top 'limit' entries.
func RankByRisk(files []schema.FileAssessment, limit int) []schema.FileAssessment {
	sort.Slice(files, func(i, j int) bool {
		if files[i].RiskScore != files[j].RiskScore {
			return files[i].RiskScore > files[j].RiskScore
		}
		return files[i].Path < files[j].Path
	})
	if limit > 0 && len(files) > limit {
		return files[:limit]
	}
	return files
}
