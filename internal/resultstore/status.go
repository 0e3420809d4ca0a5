package resultstore

import (
	"fmt"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// PrintCacheStatus prints result cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		fmt.Println("Caching is disabled")
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Keys: %d\n", status.TotalKeys)
	if status.TotalKeys > 0 {
		fmt.Printf("Newest Item: %s\n", status.NewestItem.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Item: %s\n", status.OldestItem.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Size: %d bytes\n", status.SizeBytes)
}

// PrintRunStatus prints run store status information.
func PrintRunStatus(status schema.RunStatus) {
	fmt.Printf("Run Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		fmt.Println("Run tracking is disabled")
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Newest Run: %s\n", status.NewestRun.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRun.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Assessments: %d\n", status.TotalFiles)
	}
	fmt.Printf("Size: %d bytes\n", status.SizeBytes)
}
