package models

// DailyProgress aggregates a day's time blocks into a summary record.
type DailyProgress struct {
	Date            string  `json:"date"` // YYYY-MM-DD format
	TotalBlocks     int     `json:"total_blocks"`
	CompletedBlocks int     `json:"completed_blocks"`
	SkippedBlocks   int     `json:"skipped_blocks"`
	CompletionPct   float64 `json:"completion_pct"`
	DayRating       *int    `json:"day_rating,omitempty"` // 1-5
	DayNotes        string  `json:"day_notes,omitempty"`
	CreatedAt       string  `json:"created_at"` // RFC3339 timestamp
	UpdatedAt       string  `json:"updated_at"` // RFC3339 timestamp
}

// Recalculate recomputes the completion percentage from the block counts.
// A day with no blocks has 0% completion.
func (p *DailyProgress) Recalculate() {
	if p.TotalBlocks == 0 {
		p.CompletionPct = 0
		return
	}
	p.CompletionPct = float64(p.CompletedBlocks) / float64(p.TotalBlocks) * 100
}

// IsPerfect reports whether every block of a non-empty day was completed.
func (p *DailyProgress) IsPerfect() bool {
	return p.TotalBlocks > 0 && p.CompletedBlocks == p.TotalBlocks
}
