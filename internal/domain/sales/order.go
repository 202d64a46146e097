package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sales/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle status of a sales order.
// The numeric values are part of the wire contract with the admin system
// and must not be reordered.
type OrderStatus int

const (
	OrderStatusCancelled OrderStatus = 0
	OrderStatusNew       OrderStatus = 1
	OrderStatusQuotation OrderStatus = 2
	OrderStatusOrder     OrderStatus = 3
	OrderStatusInvoiced  OrderStatus = 4
	OrderStatusPaid      OrderStatus = 5
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusCancelled && s <= OrderStatusPaid
}

// String returns the canonical name of the status.
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCancelled:
		return "CANCELLED"
	case OrderStatusNew:
		return "NEW"
	case OrderStatusQuotation:
		return "QUOTATION"
	case OrderStatusOrder:
		return "ORDER"
	case OrderStatusInvoiced:
		return "INVOICED"
	case OrderStatusPaid:
		return "PAID"
	}
	return "UNKNOWN"
}

// Order is the sales order aggregate root. It exclusively owns its line
// collection: every update replaces the full line set.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code            int             `gorm:"not null;uniqueIndex:idx_order_company_code,priority:2"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_company_code,priority:1;index"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null"`
	CustomerIDDoc   string          `gorm:"size:50"`
	CustomerName    string          `gorm:"size:100"`
	CustomerEmail   string          `gorm:"size:100"`
	CustomerPhone   string          `gorm:"size:50"`
	CustomerAddress string          `gorm:"size:150"`
	Comment         string          `gorm:"size:255"`
	Discount        decimal.Decimal `gorm:"type:numeric(14,2)"`
	DiscountPct     decimal.Decimal `gorm:"type:numeric(7,2)"`
	Status          OrderStatus     `gorm:"not null"`
	Active          bool            `gorm:"not null"`
	Version         int             `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name compatible with the admin-side schema.
func (Order) TableName() string { return "sal_order" }

// OrderLine is one product position on an order. Product name, code, cost
// and price are copied at write time so historical orders keep the prices
// they were sold at.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderCode   int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Name        string          `gorm:"size:100;not null"`
	Code        string          `gorm:"size:50"`
	Qty         decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Comment     string          `gorm:"size:100"`
	Cost        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	DiscountPct decimal.Decimal `gorm:"type:numeric(7,2)"`
	Status      int             `gorm:"not null"`
}

func (OrderLine) TableName() string { return "sal_order_line" }

// NewOrder builds an order header for the given company and user. The code
// is assigned by the repository when the order is first persisted.
func NewOrder(companyID, userID uuid.UUID) *Order {
	return &Order{
		ID:        uuid.New(),
		CompanyID: companyID,
		UserID:    userID,
		Status:    OrderStatusNew,
		Active:    true,
	}
}

// Normalize upper-cases the free-text customer identity fields so lookups
// against them are case-insensitive, matching the admin system's behavior.
func (o *Order) Normalize() {
	o.CustomerIDDoc = strings.ToUpper(o.CustomerIDDoc)
	o.CustomerName = strings.ToUpper(o.CustomerName)
	o.CustomerEmail = strings.ToUpper(o.CustomerEmail)
	o.CustomerAddress = strings.ToUpper(o.CustomerAddress)
}

// Validate checks the aggregate invariants that do not require I/O.
func (o *Order) Validate() error {
	if o.CompanyID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "company id is required")
	}
	if o.UserID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "user id is required")
	}
	if !o.Status.IsValid() {
		return shared.ErrInvalidStatus
	}
	for i := range o.Lines {
		if err := o.Lines[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the line invariants.
func (l *OrderLine) Validate() error {
	if l.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "line product id is required")
	}
	if l.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "line product name is required")
	}
	if !l.Qty.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "line qty must be positive")
	}
	return nil
}

// ReplaceLines swaps the full line collection and stamps each line with the
// order identity. Line ids are regenerated: lines are never updated in
// place, only deleted and reinserted.
func (o *Order) ReplaceLines(lines []OrderLine) {
	for i := range lines {
		lines[i].ID = uuid.New()
		lines[i].OrderID = o.ID
		lines[i].OrderCode = o.Code
	}
	o.Lines = lines
}

// Totals recomputes the order cost and price from the current line set.
// The values are intentionally never stored.
func (o *Order) Totals() (cost, price decimal.Decimal) {
	for i := range o.Lines {
		cost = cost.Add(o.Lines[i].Qty.Mul(o.Lines[i].Cost))
		price = price.Add(o.Lines[i].Qty.Mul(o.Lines[i].Price))
	}
	return cost, price
}

// Deactivate soft-deletes the order. The row is kept for audit.
func (o *Order) Deactivate() {
	o.Active = false
}
