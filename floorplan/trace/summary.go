package trace

import (
	"fmt"
	"os"
)

// summaryHeader is written once when the summary file is created.
const summaryHeader = "strategy,threads,wall_s,best_cost,chip_area,chip_width,chip_height,inl,moves_total,moves_accepted,accept_ratio,sa_runs,run_id\n"

// SummaryRecord is one appended row of the run summary CSV: what ran, for
// how long, and what it found.
type SummaryRecord struct {
	Strategy      string
	Threads       int
	WallSeconds   float64
	BestCost      float64
	ChipArea      float64
	ChipWidth     float64
	ChipHeight    float64
	INL           float64
	MovesTotal    int64
	MovesAccepted int64
	AcceptRatio   float64
	SARuns        int64
	RunID         string
}

// AppendSummary appends the record to the CSV at path, creating the file
// with its header on first use.
func AppendSummary(path string, rec SummaryRecord) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open summary file: %w", err)
	}
	defer file.Close()

	if fresh {
		if _, err := file.WriteString(summaryHeader); err != nil {
			return fmt.Errorf("write summary header: %w", err)
		}
	}
	_, err = fmt.Fprintf(file, "%s,%d,%.4f,%.6f,%.4f,%.2f,%.2f,%.2f,%d,%d,%.4f,%d,%s\n",
		rec.Strategy, rec.Threads, rec.WallSeconds, rec.BestCost,
		rec.ChipArea, rec.ChipWidth, rec.ChipHeight, rec.INL,
		rec.MovesTotal, rec.MovesAccepted, rec.AcceptRatio, rec.SARuns, rec.RunID)
	if err != nil {
		return fmt.Errorf("write summary row: %w", err)
	}
	return nil
}
