package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
)

// AgreementRepository handles database operations for agreements
type AgreementRepository struct {
	db *gorm.DB
}

// NewAgreementRepository creates a new AgreementRepository instance
func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

// Create inserts a new agreement
func (r *AgreementRepository) Create(ctx context.Context, agreement *domain.Agreement) error {
	return r.db.WithContext(ctx).Create(agreement).Error
}

// GetByID retrieves an agreement with its procurement shop
func (r *AgreementRepository) GetByID(ctx context.Context, id int64) (*domain.Agreement, error) {
	var agreement domain.Agreement
	err := r.db.WithContext(ctx).
		Preload("ProcurementShop").
		Where("id = ?", id).
		First(&agreement).Error
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

// CreateProcurementShop inserts a new procurement shop
func (r *AgreementRepository) CreateProcurementShop(ctx context.Context, shop *domain.ProcurementShop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}
