package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/routineanchor/anchor/internal/models"
)

const blockColumns = `id, title, notes, date, start_time, end_time, status, category, icon,
	       calendar_event_id, calendar_synced, created_at, updated_at, deleted_at`

func scanBlock(row interface{ Scan(...any) error }) (models.TimeBlock, error) {
	var b models.TimeBlock
	var status string
	var synced bool
	var deletedAt sql.NullString

	err := row.Scan(
		&b.ID, &b.Title, &b.Notes, &b.Date, &b.Start, &b.End, &status, &b.Category, &b.Icon,
		&b.CalendarEventID, &synced, &b.CreatedAt, &b.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return models.TimeBlock{}, err
	}

	b.Status = models.BlockStatus(status)
	b.CalendarSynced = synced
	if deletedAt.Valid {
		b.DeletedAt = &deletedAt.String
	}
	return b, nil
}

func (s *Store) AddBlock(block models.TimeBlock) error {
	return s.UpdateBlock(block)
}

func (s *Store) GetBlock(id string) (models.TimeBlock, error) {
	row := s.db.QueryRow(`
		SELECT `+blockColumns+`
		FROM time_blocks WHERE id = $1 AND deleted_at IS NULL`, id)

	b, err := scanBlock(row)
	if err == sql.ErrNoRows {
		return models.TimeBlock{}, fmt.Errorf("time block not found: %s", id)
	}
	return b, err
}

func (s *Store) GetBlocksForDate(date string) ([]models.TimeBlock, error) {
	return s.queryBlocks(`
		SELECT `+blockColumns+`
		FROM time_blocks WHERE date = $1 AND deleted_at IS NULL ORDER BY start_time`, date)
}

func (s *Store) GetAllBlocks() ([]models.TimeBlock, error) {
	return s.queryBlocks(`
		SELECT ` + blockColumns + `
		FROM time_blocks WHERE deleted_at IS NULL ORDER BY date, start_time`)
}

func (s *Store) GetAllBlocksIncludingDeleted() ([]models.TimeBlock, error) {
	return s.queryBlocks(`
		SELECT ` + blockColumns + `
		FROM time_blocks ORDER BY date, start_time`)
}

func (s *Store) queryBlocks(query string, args ...any) ([]models.TimeBlock, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.TimeBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *Store) UpdateBlock(block models.TimeBlock) error {
	var deletedAt sql.NullString
	if block.DeletedAt != nil {
		deletedAt = sql.NullString{String: *block.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO time_blocks (
			id, title, notes, date, start_time, end_time, status, category, icon,
			calendar_event_id, calendar_synced, created_at, updated_at, deleted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, notes = EXCLUDED.notes, date = EXCLUDED.date,
			start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
			status = EXCLUDED.status, category = EXCLUDED.category, icon = EXCLUDED.icon,
			calendar_event_id = EXCLUDED.calendar_event_id,
			calendar_synced = EXCLUDED.calendar_synced,
			created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at`,
		block.ID, block.Title, block.Notes, block.Date, block.Start, block.End, string(block.Status),
		block.Category, block.Icon, block.CalendarEventID, block.CalendarSynced,
		block.CreatedAt, block.UpdatedAt, deletedAt,
	)
	return err
}

func (s *Store) DeleteBlock(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM time_blocks WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("time block with id %s not found", id)
		}
		return fmt.Errorf("failed to check block existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("time block with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE time_blocks SET deleted_at = $1, updated_at = $2 WHERE id = $3", now, now, id)
	return err
}

func (s *Store) RestoreBlock(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM time_blocks WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("time block with id %s not found", id)
		}
		return fmt.Errorf("failed to check block existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a time block that is not deleted: %s", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE time_blocks SET deleted_at = NULL, updated_at = $1 WHERE id = $2", now, id)
	return err
}

func (s *Store) ResetDay(date string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		"UPDATE time_blocks SET status = $1, updated_at = $2 WHERE date = $3 AND deleted_at IS NULL",
		string(models.StatusNotStarted), now, date,
	)
	return err
}

func (s *Store) DeleteAllBlocks() error {
	_, err := s.db.Exec("DELETE FROM time_blocks")
	return err
}
