// Package trace holds the search's external record sinks: the convergence
// log written on every global-best improvement and the appended run
// summary. The engine treats both as opaque writers.
package trace

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"
)

// ConvergenceLog writes one CSV row per strict improvement of the global
// best: elapsed seconds since search start and the new best cost. Rows are
// flushed per event so a killed run still leaves a usable curve. Safe for
// concurrent use; a nil log discards every record.
type ConvergenceLog struct {
	mu   sync.Mutex
	file *os.File
	w    *bufio.Writer
}

// NewConvergenceLog creates (or truncates) the log file and writes the
// CSV header.
func NewConvergenceLog(path string) (*ConvergenceLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create convergence log: %w", err)
	}
	l := &ConvergenceLog{file: file, w: bufio.NewWriter(file)}
	if _, err := l.w.WriteString("Timestamp(s),BestCost\n"); err != nil {
		file.Close()
		return nil, fmt.Errorf("write convergence log header: %w", err)
	}
	if err := l.w.Flush(); err != nil {
		file.Close()
		return nil, fmt.Errorf("flush convergence log header: %w", err)
	}
	return l, nil
}

// Record appends one improvement row and flushes it.
func (l *ConvergenceLog) Record(elapsed time.Duration, cost float64) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := fmt.Fprintf(l.w, "%.4f,%.6f\n", elapsed.Seconds(), cost); err != nil {
		return fmt.Errorf("write convergence row: %w", err)
	}
	if err := l.w.Flush(); err != nil {
		return fmt.Errorf("flush convergence row: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying file.
func (l *ConvergenceLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.w.Flush(); err != nil {
		l.file.Close()
		return fmt.Errorf("flush convergence log: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close convergence log: %w", err)
	}
	return nil
}
