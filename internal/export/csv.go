package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/routineanchor/anchor/internal/models"
)

// Section markers are single-field records so the file stays one valid CSV
// stream while holding both record types.
const (
	csvBlocksMarker   = "# time_blocks"
	csvProgressMarker = "# daily_progress"
)

var csvBlockHeader = []string{
	"id", "title", "notes", "date", "start", "end", "status", "category", "icon",
	"calendar_event_id", "calendar_synced", "created_at", "updated_at",
}

var csvProgressHeader = []string{
	"date", "total_blocks", "completed_blocks", "skipped_blocks", "completion_pct",
	"day_rating", "day_notes", "created_at", "updated_at",
}

func writeCSV(snap Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{csvBlocksMarker}); err != nil {
		return err
	}
	if err := w.Write(csvBlockHeader); err != nil {
		return err
	}
	for _, b := range snap.TimeBlocks {
		row := []string{
			b.ID, b.Title, b.Notes, b.Date, b.Start, b.End, string(b.Status), b.Category, b.Icon,
			b.CalendarEventID, strconv.FormatBool(b.CalendarSynced), b.CreatedAt, b.UpdatedAt,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	if err := w.Write([]string{csvProgressMarker}); err != nil {
		return err
	}
	if err := w.Write(csvProgressHeader); err != nil {
		return err
	}
	for _, p := range snap.DailyProgress {
		rating := ""
		if p.DayRating != nil {
			rating = strconv.Itoa(*p.DayRating)
		}
		row := []string{
			p.Date, strconv.Itoa(p.TotalBlocks), strconv.Itoa(p.CompletedBlocks),
			strconv.Itoa(p.SkippedBlocks), strconv.FormatFloat(p.CompletionPct, 'f', 1, 64),
			rating, p.DayNotes, p.CreatedAt, p.UpdatedAt,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func readCSV(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse csv export: %w", err)
	}

	var snap Snapshot
	section := ""
	expectHeader := false

	for _, record := range records {
		if len(record) == 1 && strings.HasPrefix(record[0], "# ") {
			section = record[0]
			expectHeader = true
			continue
		}
		if expectHeader {
			// Header row follows each section marker
			expectHeader = false
			continue
		}

		switch section {
		case csvBlocksMarker:
			b, err := csvRowToBlock(record)
			if err != nil {
				return Snapshot{}, err
			}
			snap.TimeBlocks = append(snap.TimeBlocks, b)
		case csvProgressMarker:
			p, err := csvRowToProgress(record)
			if err != nil {
				return Snapshot{}, err
			}
			snap.DailyProgress = append(snap.DailyProgress, p)
		default:
			return Snapshot{}, fmt.Errorf("csv row outside of a known section: %v", record)
		}
	}

	return snap, nil
}

func csvRowToBlock(record []string) (models.TimeBlock, error) {
	if len(record) != len(csvBlockHeader) {
		return models.TimeBlock{}, fmt.Errorf("time block row has %d fields, expected %d", len(record), len(csvBlockHeader))
	}
	synced, err := strconv.ParseBool(record[10])
	if err != nil {
		return models.TimeBlock{}, fmt.Errorf("invalid calendar_synced value %q: %w", record[10], err)
	}
	return models.TimeBlock{
		ID: record[0], Title: record[1], Notes: record[2], Date: record[3],
		Start: record[4], End: record[5], Status: models.BlockStatus(record[6]),
		Category: record[7], Icon: record[8], CalendarEventID: record[9],
		CalendarSynced: synced, CreatedAt: record[11], UpdatedAt: record[12],
	}, nil
}

func csvRowToProgress(record []string) (models.DailyProgress, error) {
	if len(record) != len(csvProgressHeader) {
		return models.DailyProgress{}, fmt.Errorf("daily progress row has %d fields, expected %d", len(record), len(csvProgressHeader))
	}

	total, err := strconv.Atoi(record[1])
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("invalid total_blocks %q: %w", record[1], err)
	}
	completed, err := strconv.Atoi(record[2])
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("invalid completed_blocks %q: %w", record[2], err)
	}
	skipped, err := strconv.Atoi(record[3])
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("invalid skipped_blocks %q: %w", record[3], err)
	}
	pct, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("invalid completion_pct %q: %w", record[4], err)
	}

	p := models.DailyProgress{
		Date: record[0], TotalBlocks: total, CompletedBlocks: completed,
		SkippedBlocks: skipped, CompletionPct: pct,
		DayNotes: record[6], CreatedAt: record[7], UpdatedAt: record[8],
	}
	if record[5] != "" {
		rating, err := strconv.Atoi(record[5])
		if err != nil {
			return models.DailyProgress{}, fmt.Errorf("invalid day_rating %q: %w", record[5], err)
		}
		p.DayRating = &rating
	}
	return p, nil
}
