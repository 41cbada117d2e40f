package logbook

import (
	"time"

	"gorm.io/gorm"
)

// EncodeRecord is a persisted history entry for one Encode call: the input
// text, its classified subtype, and the shape of the waveform trajectory it
// produced.
type EncodeRecord struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Message         string    `gorm:"index;size:80;not null" json:"message"`
	Subtype         string    `gorm:"index;size:20;not null" json:"subtype"`
	I3              uint8     `gorm:"not null" json:"i3"`
	PayloadHex      string    `gorm:"size:20" json:"payload_hex"`
	SymbolCount     int       `gorm:"not null" json:"symbol_count"`
	TrajectorySize  int       `gorm:"not null" json:"trajectory_size"`
	SampleRate      int       `gorm:"not null" json:"sample_rate"`
	EncodeDurationUs int64     `gorm:"column:encode_duration_us" json:"encode_duration_us"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName specifies the table name for EncodeRecord.
func (EncodeRecord) TableName() string {
	return "encode_records"
}

// BeforeCreate ensures CreatedAt is populated even when callers construct
// the record directly.
func (r *EncodeRecord) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}
