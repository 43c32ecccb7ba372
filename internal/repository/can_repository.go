package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
)

// CANRepository handles database operations for CANs
type CANRepository struct {
	db *gorm.DB
}

// NewCANRepository creates a new CANRepository instance
func NewCANRepository(db *gorm.DB) *CANRepository {
	return &CANRepository{db: db}
}

// Create inserts a new CAN
func (r *CANRepository) Create(ctx context.Context, can *domain.CAN) error {
	return r.db.WithContext(ctx).Create(can).Error
}

// GetByIDs returns the CANs with the given ids keyed by id
func (r *CANRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.CAN, error) {
	out := make(map[int64]domain.CAN, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var cans []domain.CAN
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cans).Error; err != nil {
		return nil, err
	}
	for _, c := range cans {
		out[c.ID] = c
	}
	return out, nil
}

// List returns all CANs ordered by number
func (r *CANRepository) List(ctx context.Context) ([]domain.CAN, error) {
	var cans []domain.CAN
	err := r.db.WithContext(ctx).Order("number ASC").Find(&cans).Error
	return cans, err
}
