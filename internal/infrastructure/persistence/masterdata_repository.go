package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
)

// GormCompanyRepository implements sales.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds an active company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Company, error) {
	var company sales.Company
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByName finds an active company by its name
func (r *GormCompanyRepository) FindByName(ctx context.Context, name string) (*sales.Company, error) {
	var company sales.Company
	if err := r.db.WithContext(ctx).
		Where("name = ? AND active = ?", name, true).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// Search finds active companies, optionally filtered by name substring
func (r *GormCompanyRepository) Search(ctx context.Context, p shared.Pagination, name string) ([]sales.Company, error) {
	p = p.Normalize()

	query := r.db.WithContext(ctx).
		Model(&sales.Company{}).
		Where("active = ?", true)
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(name))
	}

	var companies []sales.Company
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// ExistsActive reports whether an active company with the given ID exists
func (r *GormCompanyRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Company{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *sales.Company) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(company).Error
}

// SoftDelete marks an active company inactive
func (r *GormCompanyRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&sales.Company{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormUserRepository implements sales.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds an active user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.User, error) {
	var user sales.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds an active user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*sales.User, error) {
	var user sales.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search finds active users of a company, optionally filtered by name substring
func (r *GormUserRepository) Search(ctx context.Context, companyID uuid.UUID, p shared.Pagination, name string) ([]sales.User, error) {
	p = p.Normalize()

	query := r.db.WithContext(ctx).
		Model(&sales.User{}).
		Where("company_id = ? AND active = ?", companyID, true)
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(name))
	}

	var users []sales.User
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ExistsActive reports whether an active user with the given ID exists
func (r *GormUserRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.User{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *sales.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(user).Error
}

// SoftDelete marks an active user inactive
func (r *GormUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&sales.User{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormProductRepository implements sales.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds an active product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Product, error) {
	var product sales.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByName finds an active product of a company by name
func (r *GormProductRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*sales.Product, error) {
	var product sales.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ? AND active = ?", companyID, name, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindActiveByIDs returns the subset of ids resolving to active products
func (r *GormProductRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]sales.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []sales.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search finds active products of a company, optionally filtered by name substring
func (r *GormProductRepository) Search(ctx context.Context, companyID uuid.UUID, p shared.Pagination, name string) ([]sales.Product, error) {
	p = p.Normalize()

	query := r.db.WithContext(ctx).
		Model(&sales.Product{}).
		Where("company_id = ? AND active = ?", companyID, true)
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(name))
	}

	var products []sales.Product
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *sales.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(product).Error
}

// SoftDelete marks an active product inactive
func (r *GormProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&sales.Product{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure the repositories implement their domain interfaces
var (
	_ sales.CompanyRepository = (*GormCompanyRepository)(nil)
	_ sales.UserRepository    = (*GormUserRepository)(nil)
	_ sales.ProductRepository = (*GormProductRepository)(nil)
)
