package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
)

// ServicesComponentRepository handles database operations for services components
type ServicesComponentRepository struct {
	db *gorm.DB
}

// NewServicesComponentRepository creates a new ServicesComponentRepository instance
func NewServicesComponentRepository(db *gorm.DB) *ServicesComponentRepository {
	return &ServicesComponentRepository{db: db}
}

// Create inserts a new services component
func (r *ServicesComponentRepository) Create(ctx context.Context, sc *domain.ServicesComponent) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

// ListByAgreement returns an agreement's services components, required ones first
func (r *ServicesComponentRepository) ListByAgreement(ctx context.Context, agreementID int64) ([]domain.ServicesComponent, error) {
	var components []domain.ServicesComponent
	err := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		Order("optional ASC, number ASC").
		Find(&components).Error
	return components, err
}
