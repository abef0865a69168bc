package export

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/routineanchor/anchor/internal/models"
)

// The text digest is meant for humans first, but it stays line-structured
// (key: value per line, blank line between records) so it round-trips
// through import like the other formats.

const (
	textBlocksHeading   = "== Time Blocks =="
	textProgressHeading = "== Daily Progress =="
)

func escapeText(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

func unescapeText(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func writeText(snap Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create text file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "Routine Anchor Export")
	fmt.Fprintf(w, "generated: %s\n", snap.ExportedAt)
	fmt.Fprintf(w, "app_version: %s\n", snap.AppVersion)
	fmt.Fprintln(w)

	fmt.Fprintln(w, textBlocksHeading)
	fmt.Fprintln(w)
	for _, b := range snap.TimeBlocks {
		fmt.Fprintf(w, "id: %s\n", b.ID)
		fmt.Fprintf(w, "title: %s\n", escapeText(b.Title))
		fmt.Fprintf(w, "date: %s\n", b.Date)
		fmt.Fprintf(w, "time: %s-%s\n", b.Start, b.End)
		fmt.Fprintf(w, "status: %s\n", b.Status)
		if b.Notes != "" {
			fmt.Fprintf(w, "notes: %s\n", escapeText(b.Notes))
		}
		if b.Category != "" {
			fmt.Fprintf(w, "category: %s\n", escapeText(b.Category))
		}
		if b.Icon != "" {
			fmt.Fprintf(w, "icon: %s\n", b.Icon)
		}
		if b.CalendarEventID != "" {
			fmt.Fprintf(w, "calendar_event_id: %s\n", b.CalendarEventID)
			fmt.Fprintf(w, "calendar_synced: %t\n", b.CalendarSynced)
		}
		fmt.Fprintf(w, "created_at: %s\n", b.CreatedAt)
		fmt.Fprintf(w, "updated_at: %s\n", b.UpdatedAt)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, textProgressHeading)
	fmt.Fprintln(w)
	for _, p := range snap.DailyProgress {
		fmt.Fprintf(w, "date: %s\n", p.Date)
		fmt.Fprintf(w, "total: %d\n", p.TotalBlocks)
		fmt.Fprintf(w, "completed: %d\n", p.CompletedBlocks)
		fmt.Fprintf(w, "skipped: %d\n", p.SkippedBlocks)
		fmt.Fprintf(w, "completion: %.1f%%\n", p.CompletionPct)
		if p.DayRating != nil {
			fmt.Fprintf(w, "rating: %d\n", *p.DayRating)
		}
		if p.DayNotes != "" {
			fmt.Fprintf(w, "notes: %s\n", escapeText(p.DayNotes))
		}
		fmt.Fprintf(w, "created_at: %s\n", p.CreatedAt)
		fmt.Fprintf(w, "updated_at: %s\n", p.UpdatedAt)
		fmt.Fprintln(w)
	}

	return w.Flush()
}

func readText(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	section := ""
	fields := map[string]string{}

	flush := func() error {
		if len(fields) == 0 {
			return nil
		}
		defer func() { fields = map[string]string{} }()

		switch section {
		case textBlocksHeading:
			b, err := textFieldsToBlock(fields)
			if err != nil {
				return err
			}
			snap.TimeBlocks = append(snap.TimeBlocks, b)
		case textProgressHeading:
			p, err := textFieldsToProgress(fields)
			if err != nil {
				return err
			}
			snap.DailyProgress = append(snap.DailyProgress, p)
		default:
			// Preamble: generated / app_version lines
			snap.ExportedAt = fields["generated"]
			snap.AppVersion = fields["app_version"]
		}
		return nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if line == textBlocksHeading || line == textProgressHeading {
			if err := flush(); err != nil {
				return Snapshot{}, err
			}
			section = line
			continue
		}
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return Snapshot{}, err
			}
			continue
		}

		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			// Title line and anything unrecognized in the preamble
			continue
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("read text export: %w", err)
	}
	if err := flush(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func textFieldsToBlock(fields map[string]string) (models.TimeBlock, error) {
	start, end, ok := strings.Cut(fields["time"], "-")
	if !ok {
		return models.TimeBlock{}, fmt.Errorf("time block %q has invalid time range %q", fields["id"], fields["time"])
	}

	b := models.TimeBlock{
		ID:              fields["id"],
		Title:           unescapeText(fields["title"]),
		Notes:           unescapeText(fields["notes"]),
		Date:            fields["date"],
		Start:           start,
		End:             end,
		Status:          models.BlockStatus(fields["status"]),
		Category:        unescapeText(fields["category"]),
		Icon:            fields["icon"],
		CalendarEventID: fields["calendar_event_id"],
		CreatedAt:       fields["created_at"],
		UpdatedAt:       fields["updated_at"],
	}
	if v, ok := fields["calendar_synced"]; ok {
		synced, err := strconv.ParseBool(v)
		if err != nil {
			return models.TimeBlock{}, fmt.Errorf("time block %q has invalid calendar_synced %q", b.ID, v)
		}
		b.CalendarSynced = synced
	}
	return b, nil
}

func textFieldsToProgress(fields map[string]string) (models.DailyProgress, error) {
	atoi := func(key string) (int, error) {
		n, err := strconv.Atoi(fields[key])
		if err != nil {
			return 0, fmt.Errorf("daily progress %q has invalid %s %q", fields["date"], key, fields[key])
		}
		return n, nil
	}

	total, err := atoi("total")
	if err != nil {
		return models.DailyProgress{}, err
	}
	completed, err := atoi("completed")
	if err != nil {
		return models.DailyProgress{}, err
	}
	skipped, err := atoi("skipped")
	if err != nil {
		return models.DailyProgress{}, err
	}

	pct, err := strconv.ParseFloat(strings.TrimSuffix(fields["completion"], "%"), 64)
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("daily progress %q has invalid completion %q", fields["date"], fields["completion"])
	}

	p := models.DailyProgress{
		Date:            fields["date"],
		TotalBlocks:     total,
		CompletedBlocks: completed,
		SkippedBlocks:   skipped,
		CompletionPct:   pct,
		DayNotes:        unescapeText(fields["notes"]),
		CreatedAt:       fields["created_at"],
		UpdatedAt:       fields["updated_at"],
	}
	if v, ok := fields["rating"]; ok {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return models.DailyProgress{}, fmt.Errorf("daily progress %q has invalid rating %q", p.Date, v)
		}
		p.DayRating = &rating
	}
	return p, nil
}
