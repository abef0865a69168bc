// Package export serializes time blocks and daily progress to JSON, CSV,
// or a plain-text digest, and imports the same formats back with
// duplicate-skip semantics.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/storage"
)

// Format identifies an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatCSV || f == FormatText
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Statistics summarizes the exported data set.
type Statistics struct {
	TotalBlocks     int `json:"total_blocks"`
	CompletedBlocks int `json:"completed_blocks"`
	SkippedBlocks   int `json:"skipped_blocks"`
	TotalDays       int `json:"total_days"`
}

// Snapshot is the full exportable data set.
type Snapshot struct {
	ExportedAt    string                 `json:"exported_at"`
	AppVersion    string                 `json:"app_version"`
	TimeBlocks    []models.TimeBlock     `json:"time_blocks"`
	DailyProgress []models.DailyProgress `json:"daily_progress"`
	Settings      *models.Settings       `json:"settings,omitempty"`
	Statistics    Statistics             `json:"statistics"`
}

// BuildSnapshot collects everything exportable from the store.
func BuildSnapshot(store storage.Provider) (Snapshot, error) {
	blocks, err := store.GetAllBlocks()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load time blocks: %w", err)
	}
	records, err := store.GetAllProgress()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load daily progress: %w", err)
	}

	snap := Snapshot{
		ExportedAt:    time.Now().UTC().Format(time.RFC3339),
		AppVersion:    constants.Version,
		TimeBlocks:    blocks,
		DailyProgress: records,
	}
	if settings, err := store.GetSettings(); err == nil {
		snap.Settings = &settings
	}

	snap.Statistics = Statistics{
		TotalBlocks: len(blocks),
		TotalDays:   len(records),
	}
	for _, b := range blocks {
		switch b.Status {
		case models.StatusCompleted:
			snap.Statistics.CompletedBlocks++
		case models.StatusSkipped:
			snap.Statistics.SkippedBlocks++
		}
	}

	return snap, nil
}

// FileName generates the export file name for a format:
// routine-anchor-export-<timestamp>.<ext>
func FileName(format Format, now time.Time) string {
	return constants.ExportFilePrefix + now.Format(constants.ExportTimestampFormat) + "." + format.Extension()
}

// NegotiateFormat decides the export format: an explicit format flag wins,
// otherwise the output path extension, otherwise JSON.
func NegotiateFormat(explicit, path string) (Format, error) {
	if explicit != "" {
		f := Format(strings.ToLower(explicit))
		if f == Format("txt") || f == Format("plain") {
			f = FormatText
		}
		if !f.Valid() {
			return "", fmt.Errorf("unsupported export format: %s (use json, csv, or text)", explicit)
		}
		return f, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".txt", ".text":
		return FormatText, nil
	default:
		return FormatJSON, nil
	}
}

// Write serializes the snapshot to path in the given format.
func Write(snap Snapshot, format Format, path string) error {
	switch format {
	case FormatJSON:
		return writeJSON(snap, path)
	case FormatCSV:
		return writeCSV(snap, path)
	case FormatText:
		return writeText(snap, path)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// Read parses an export file back into a snapshot, sniffing the format
// from the file extension.
func Read(path string) (Snapshot, error) {
	format, err := NegotiateFormat("", path)
	if err != nil {
		return Snapshot{}, err
	}
	switch format {
	case FormatCSV:
		return readCSV(path)
	case FormatText:
		return readText(path)
	default:
		return readJSON(path)
	}
}
