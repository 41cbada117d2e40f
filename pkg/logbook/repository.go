package logbook

import (
	"time"

	"gorm.io/gorm"
)

// Repository handles encode-history database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new encode-history repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create adds a new encode record.
func (r *Repository) Create(rec *EncodeRecord) error {
	return r.db.Create(rec).Error
}

// GetRecent retrieves the most recent N encode records.
func (r *Repository) GetRecent(limit int) ([]EncodeRecord, error) {
	var records []EncodeRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

// GetRecentPaginated retrieves encode records with pagination.
func (r *Repository) GetRecentPaginated(page, perPage int) ([]EncodeRecord, int64, error) {
	var records []EncodeRecord
	var total int64

	if err := r.db.Model(&EncodeRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	err := r.db.Order("created_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&records).Error

	return records, total, err
}

// GetBySubtype retrieves encode records classified with a given subtype.
func (r *Repository) GetBySubtype(subtype string, limit int) ([]EncodeRecord, error) {
	var records []EncodeRecord
	err := r.db.Where("subtype = ?", subtype).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// GetByTimeRange retrieves encode records within a time range.
func (r *Repository) GetByTimeRange(start, end time.Time, limit int) ([]EncodeRecord, error) {
	var records []EncodeRecord
	err := r.db.Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// DeleteOlderThan deletes encode records older than the specified time.
func (r *Repository) DeleteOlderThan(before time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", before).Delete(&EncodeRecord{})
	return result.RowsAffected, result.Error
}

// Count returns the total number of encode records.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&EncodeRecord{}).Count(&count).Error
	return count, err
}
