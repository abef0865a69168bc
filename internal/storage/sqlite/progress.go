package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/routineanchor/anchor/internal/models"
)

func (s *Store) SaveProgress(p models.DailyProgress) error {
	var rating sql.NullInt64
	if p.DayRating != nil {
		rating = sql.NullInt64{Int64: int64(*p.DayRating), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO daily_progress (
			date, total_blocks, completed_blocks, skipped_blocks, completion_pct,
			day_rating, day_notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Date, p.TotalBlocks, p.CompletedBlocks, p.SkippedBlocks, p.CompletionPct,
		rating, p.DayNotes, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *Store) GetProgress(date string) (models.DailyProgress, error) {
	row := s.db.QueryRow(`
		SELECT date, total_blocks, completed_blocks, skipped_blocks, completion_pct,
		       day_rating, day_notes, created_at, updated_at
		FROM daily_progress WHERE date = ?`, date)

	p, err := scanProgress(row)
	if err == sql.ErrNoRows {
		return models.DailyProgress{}, fmt.Errorf("no progress recorded for date: %s", date)
	}
	return p, err
}

func (s *Store) GetProgressRange(startDate, endDate string) ([]models.DailyProgress, error) {
	return s.queryProgress(`
		SELECT date, total_blocks, completed_blocks, skipped_blocks, completion_pct,
		       day_rating, day_notes, created_at, updated_at
		FROM daily_progress WHERE date >= ? AND date <= ? ORDER BY date`, startDate, endDate)
}

func (s *Store) GetAllProgress() ([]models.DailyProgress, error) {
	return s.queryProgress(`
		SELECT date, total_blocks, completed_blocks, skipped_blocks, completion_pct,
		       day_rating, day_notes, created_at, updated_at
		FROM daily_progress ORDER BY date`)
}

func (s *Store) ClearProgress() error {
	_, err := s.db.Exec("DELETE FROM daily_progress")
	return err
}

func (s *Store) queryProgress(query string, args ...any) ([]models.DailyProgress, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.DailyProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func scanProgress(row interface{ Scan(...any) error }) (models.DailyProgress, error) {
	var p models.DailyProgress
	var rating sql.NullInt64

	err := row.Scan(
		&p.Date, &p.TotalBlocks, &p.CompletedBlocks, &p.SkippedBlocks, &p.CompletionPct,
		&rating, &p.DayNotes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.DailyProgress{}, err
	}

	if rating.Valid {
		r := int(rating.Int64)
		p.DayRating = &r
	}
	return p, nil
}
