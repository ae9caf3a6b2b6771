// Package database хранит историю запусков в PostgreSQL через GORM.
// Схема создается миграциями из пакета migrations.
package database

import (
	"time"

	"github.com/google/uuid"
)

// Run - один запуск пакетной обработки.
type Run struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StartedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time // nil, пока запуск не завершен
	Total      int        `gorm:"not null"`
	Succeeded  int        `gorm:"not null;default:0"`
	Failed     int        `gorm:"not null;default:0"`
}

// FirmwareRecord - полученная запись о версиях для одной модели.
type FirmwareRecord struct {
	ID        uint      `gorm:"primaryKey"`
	RunID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Vendor    string    `gorm:"type:varchar(32);not null"`
	Model     string    `gorm:"type:text;not null"`
	Current   *string   `gorm:"type:varchar(64)"`
	Approved  *string   `gorm:"type:varchar(64)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ExtractionFailure - элемент, для которого сценарий завершился ошибкой.
type ExtractionFailure struct {
	ID        uint      `gorm:"primaryKey"`
	RunID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Vendor    string    `gorm:"type:varchar(32);not null"`
	Model     string    `gorm:"type:text;not null"`
	Error     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
