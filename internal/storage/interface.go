package storage

import "github.com/routineanchor/anchor/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Time blocks
	AddBlock(models.TimeBlock) error
	GetBlock(id string) (models.TimeBlock, error)
	GetBlocksForDate(date string) ([]models.TimeBlock, error)
	GetAllBlocks() ([]models.TimeBlock, error)
	GetAllBlocksIncludingDeleted() ([]models.TimeBlock, error)
	UpdateBlock(models.TimeBlock) error
	DeleteBlock(id string) error
	RestoreBlock(id string) error

	// Bulk operations
	ResetDay(date string) error
	DeleteAllBlocks() error

	// Daily progress
	SaveProgress(models.DailyProgress) error
	GetProgress(date string) (models.DailyProgress, error)
	GetProgressRange(startDate, endDate string) ([]models.DailyProgress, error)
	GetAllProgress() ([]models.DailyProgress, error)
	ClearProgress() error

	// Utils
	GetConfigPath() string
}
