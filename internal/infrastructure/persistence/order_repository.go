package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db        *gorm.DB
	sequences *GormSequenceRepository
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB, sequences *GormSequenceRepository) *GormOrderRepository {
	return &GormOrderRepository{db: db, sequences: sequences}
}

// FindByID finds an active order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ? AND active = ?", id, true).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Search finds active orders for a company matching the filter, newest first
func (r *GormOrderRepository) Search(ctx context.Context, companyID uuid.UUID, p shared.Pagination, f sales.OrderSearchFilter) ([]sales.Order, error) {
	p = p.Normalize()

	query := r.db.WithContext(ctx).
		Model(&sales.Order{}).
		Preload("Lines").
		Where("company_id = ? AND active = ?", companyID, true)

	if f.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		query = query.Where("created_at <= ?", *f.CreatedTo)
	}
	if f.Code != "" {
		query = query.Where("CAST(code AS TEXT) LIKE ?", likePattern(f.Code))
	}
	if f.CustomerNameIDDoc != "" {
		pattern := likePattern(f.CustomerNameIDDoc)
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(customer_id_doc) LIKE ?", pattern, pattern)
	}
	if f.Comment != "" {
		query = query.Where("LOWER(comment) LIKE ?", likePattern(f.Comment))
	}

	var orders []sales.Order
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// likePattern lowercases the term and turns spaces into wildcards so
// "jo do" matches "JOHN DOE"
func likePattern(term string) string {
	return "%" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(term)), " ", "%") + "%"
}

// Create allocates the order code from the company sequence and inserts the
// header and lines in one transaction. The sequence row lock is held until
// commit so concurrent creates for the same company serialize.
func (r *GormOrderRepository) Create(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := r.sequences.NextCode(tx, order.CompanyID, sales.DocumentTypeOrder)
		if err != nil {
			return err
		}
		order.Code = code
		for i := range order.Lines {
			order.Lines[i].OrderID = order.ID
			order.Lines[i].OrderCode = code
		}

		if err := tx.Omit("Lines").Create(order).Error; err != nil {
			return err
		}
		if len(order.Lines) > 0 {
			if err := tx.Create(&order.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update rewrites the order header under an optimistic version check and
// replaces the full line set
func (r *GormOrderRepository) Update(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := order.Version
		order.Version++
		order.UpdatedAt = time.Now()

		result := tx.Model(&sales.Order{}).
			Where("id = ? AND active = ? AND version = ?", order.ID, true, currentVersion).
			Updates(map[string]interface{}{
				"customer_id_doc":  order.CustomerIDDoc,
				"customer_name":    order.CustomerName,
				"customer_email":   order.CustomerEmail,
				"customer_phone":   order.CustomerPhone,
				"customer_address": order.CustomerAddress,
				"comment":          order.Comment,
				"discount":         order.Discount,
				"discount_pct":     order.DiscountPct,
				"status":           order.Status,
				"version":          order.Version,
				"updated_at":       order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Row is gone, inactive, or was modified concurrently.
			var count int64
			if err := tx.Model(&sales.Order{}).
				Where("id = ? AND active = ?", order.ID, true).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrContention
		}

		// Lines are never updated in place, only replaced wholesale.
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&sales.OrderLine{}).Error; err != nil {
			return err
		}
		if len(order.Lines) > 0 {
			if err := tx.Create(&order.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SoftDelete marks an active order inactive, keeping the row for audit
func (r *GormOrderRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&sales.Order{}).
		Where("id = ? AND active = ?", id, true).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return shared.ErrIsBeingUsed
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// isForeignKeyViolation reports whether err is a referential integrity error
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key") || strings.Contains(msg, "violates")
}

// Ensure GormOrderRepository implements sales.OrderRepository
var _ sales.OrderRepository = (*GormOrderRepository)(nil)
