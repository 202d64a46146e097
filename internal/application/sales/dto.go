package sales

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/sales/backend/internal/domain/sales"
)

// OrderLineRequest is one product position on an incoming order. Name, code,
// cost and price are resolved from the catalog server-side.
type OrderLineRequest struct {
	ProductID   string          `json:"productId" binding:"required,uuid"`
	Qty         decimal.Decimal `json:"qty" binding:"required"`
	Comment     string          `json:"comment"`
	Discount    decimal.Decimal `json:"discount"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Status      int             `json:"status"`
}

// OrderRequest carries an order create-or-update. An empty ID means create.
type OrderRequest struct {
	ID              string             `json:"id" binding:"omitempty,uuid"`
	CompanyID       string             `json:"companyId" binding:"required,uuid"`
	UserID          string             `json:"userId" binding:"required,uuid"`
	CustomerIDDoc   string             `json:"customerIdDoc"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	Comment         string             `json:"comment"`
	Discount        decimal.Decimal    `json:"discount"`
	DiscountPct     decimal.Decimal    `json:"discountPct"`
	Status          int                `json:"status" binding:"orderstatus"`
	Lines           []OrderLineRequest `json:"lines" binding:"dive"`
}

// OrderSearchRequest is the filter accepted by searchByValues
type OrderSearchRequest struct {
	CreatedFrom       *time.Time `json:"createdFrom" form:"createdFrom"`
	CreatedTo         *time.Time `json:"createdTo" form:"createdTo"`
	Code              string     `json:"code" form:"code"`
	CustomerNameIDDoc string     `json:"customerNameIdDoc" form:"customerNameIdDoc"`
	Comment           string     `json:"comment" form:"comment"`
	Page              int        `json:"page" form:"page"`
	Limit             int        `json:"limit" form:"limit"`
}

// OrderLineResponse is one line of an order response
type OrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Qty         decimal.Decimal `json:"qty"`
	Comment     string          `json:"comment,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Status      int             `json:"status"`
}

// OrderResponse is the outward view of an order. Cost and price are always
// recomputed from the lines, never read from storage.
type OrderResponse struct {
	ID              string              `json:"id"`
	Code            string              `json:"code"`
	CompanyID       string              `json:"companyId"`
	UserID          string              `json:"userId"`
	CustomerIDDoc   string              `json:"customerIdDoc,omitempty"`
	CustomerName    string              `json:"customerName,omitempty"`
	CustomerEmail   string              `json:"customerEmail,omitempty"`
	CustomerPhone   string              `json:"customerPhone,omitempty"`
	CustomerAddress string              `json:"customerAddress,omitempty"`
	Comment         string              `json:"comment,omitempty"`
	Discount        decimal.Decimal     `json:"discount"`
	DiscountPct     decimal.Decimal     `json:"discountPct"`
	Status          int                 `json:"status"`
	Cost            decimal.Decimal     `json:"cost"`
	Price           decimal.Decimal     `json:"price"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Lines           []OrderLineResponse `json:"lines"`
}

// ToOrderResponse maps a domain order to its outward view
func ToOrderResponse(order *domain.Order) OrderResponse {
	cost, price := order.Totals()
	lines := make([]OrderLineResponse, len(order.Lines))
	for i := range order.Lines {
		l := &order.Lines[i]
		lines[i] = OrderLineResponse{
			ID:          l.ID.String(),
			ProductID:   l.ProductID.String(),
			Name:        l.Name,
			Code:        l.Code,
			Qty:         l.Qty,
			Comment:     l.Comment,
			Cost:        l.Cost,
			Price:       l.Price,
			Discount:    l.Discount,
			DiscountPct: l.DiscountPct,
			Status:      l.Status,
		}
	}
	return OrderResponse{
		ID:              order.ID.String(),
		Code:            domain.FormatCode(order.Code),
		CompanyID:       order.CompanyID.String(),
		UserID:          order.UserID.String(),
		CustomerIDDoc:   order.CustomerIDDoc,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		Comment:         order.Comment,
		Discount:        order.Discount,
		DiscountPct:     order.DiscountPct,
		Status:          int(order.Status),
		Cost:            cost,
		Price:           price,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Lines:           lines,
	}
}

// ToOrderResponses maps a slice of orders
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// CompanyRequest carries a company create-or-update
type CompanyRequest struct {
	ID   string `json:"id" binding:"omitempty,uuid"`
	Name string `json:"name" binding:"required"`
}

// CompanyResponse is the outward view of a company
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCompanyResponse maps a domain company
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{ID: c.ID.String(), Name: c.Name, CreatedAt: c.CreatedAt}
}

// UserRequest carries a user create-or-update
type UserRequest struct {
	ID        string `json:"id" binding:"omitempty,uuid"`
	CompanyID string `json:"companyId" binding:"required,uuid"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// UserResponse is the outward view of a user
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse maps a domain user
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		CompanyID: u.CompanyID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// ProductRequest carries a product create-or-update
type ProductRequest struct {
	ID        string          `json:"id" binding:"omitempty,uuid"`
	CompanyID string          `json:"companyId" binding:"required,uuid"`
	Name      string          `json:"name" binding:"required"`
	Code      string          `json:"code"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
}

// ProductResponse is the outward view of a product
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"companyId"`
	Name      string          `json:"name"`
	Code      string          `json:"code,omitempty"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToProductResponse maps a domain product
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID.String(),
		CompanyID: p.CompanyID.String(),
		Name:      p.Name,
		Code:      p.Code,
		Cost:      p.Cost,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}

// SearchRequest is the generic name filter used by masterdata searches
type SearchRequest struct {
	Name  string `json:"name" form:"name"`
	Page  int    `json:"page" form:"page"`
	Limit int    `json:"limit" form:"limit"`
}
