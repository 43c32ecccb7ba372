package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
)

// BudgetLineItemRepository handles database operations for budget line items
type BudgetLineItemRepository struct {
	db *gorm.DB
}

// NewBudgetLineItemRepository creates a new BudgetLineItemRepository instance
func NewBudgetLineItemRepository(db *gorm.DB) *BudgetLineItemRepository {
	return &BudgetLineItemRepository{db: db}
}

// GetByID retrieves a budget line item with its CAN
func (r *BudgetLineItemRepository) GetByID(ctx context.Context, id int64) (*domain.BudgetLineItem, error) {
	var item domain.BudgetLineItem
	err := r.db.WithContext(ctx).Preload("CAN").Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByAgreement returns an agreement's budget lines in creation order
func (r *BudgetLineItemRepository) ListByAgreement(ctx context.Context, agreementID int64) ([]domain.BudgetLineItem, error) {
	var items []domain.BudgetLineItem
	err := r.db.WithContext(ctx).
		Preload("CAN").
		Where("agreement_id = ?", agreementID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// BudgetLineBatch is one wizard save: lines to create, lines to update and
// ids of lines to delete, all belonging to AgreementID.
type BudgetLineBatch struct {
	AgreementID int64
	Created     []*domain.BudgetLineItem
	Updated     []*domain.BudgetLineItem
	Deleted     []int64
}

// SaveBatch applies a batch in one transaction. Created items get their ids
// assigned in place. An update that matches no row of the agreement fails
// the whole batch with gorm.ErrRecordNotFound; deleting a line that is
// already gone is not an error.
func (r *BudgetLineItemRepository) SaveBatch(ctx context.Context, batch BudgetLineBatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(batch.Deleted) > 0 {
			err := tx.Where("id IN ? AND agreement_id = ?", batch.Deleted, batch.AgreementID).
				Delete(&domain.BudgetLineItem{}).Error
			if err != nil {
				return fmt.Errorf("failed to delete budget lines: %w", err)
			}
		}
		for _, item := range batch.Created {
			if err := tx.Omit("CAN", "ServicesComponent").Create(item).Error; err != nil {
				return fmt.Errorf("failed to create budget line: %w", err)
			}
		}
		for _, item := range batch.Updated {
			item.UpdatedAt = time.Now().UTC()
			result := tx.Model(&domain.BudgetLineItem{}).
				Where("id = ? AND agreement_id = ?", item.ID, batch.AgreementID).
				Updates(map[string]any{
					"line_description":         item.Description,
					"comments":                 item.Comments,
					"amount":                   item.Amount,
					"can_id":                   item.CANID,
					"services_component_id":    item.ServicesComponentID,
					"status":                   item.Status,
					"date_needed":              item.DateNeeded,
					"proc_shop_fee_percentage": item.ProcShopFeePercentage,
					"updated_at":               item.UpdatedAt,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to update budget line %d: %w", item.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("budget line %d: %w", item.ID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

// CountByAgreement returns the number of budget lines of an agreement
func (r *BudgetLineItemRepository) CountByAgreement(ctx context.Context, agreementID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.BudgetLineItem{}).
		Where("agreement_id = ?", agreementID).
		Count(&count).Error
	return int(count), err
}
