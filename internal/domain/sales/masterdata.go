package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is a tenant of the sales system. Companies are mastered in the
// admin system and replicated here; the order core only checks existence.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Company) TableName() string { return "sal_company" }

// User is a salesperson belonging to a company.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:100;not null;uniqueIndex"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "sal_user" }

// Product is the sellable catalog entry. Cost and price here are the
// current values; order lines copy them at write time.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_company_name,priority:1"`
	Name      string          `gorm:"size:100;not null;uniqueIndex:idx_product_company_name,priority:2"`
	Code      string          `gorm:"size:50"`
	Cost      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Active    bool            `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string { return "sal_product" }
