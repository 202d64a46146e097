package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sales/backend/internal/domain/shared"
)

// OrderSearchFilter holds the conjunctive search predicate for orders.
// Substring filters match case-insensitively with spaces treated as
// wildcards, as the upstream clients expect.
type OrderSearchFilter struct {
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	Code              string
	CustomerNameIDDoc string
	Comment           string
}

// OrderRepository persists orders and their line sets. Create and Update
// wrap all statements in a single database transaction; Create also
// allocates the order code from the company sequence inside that
// transaction, holding the sequence row lock until commit.
type OrderRepository interface {
	// FindByID returns an active order with its lines, or NOT_FOUND.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// Search returns active orders of a company matching the filter,
	// newest first.
	Search(ctx context.Context, companyID uuid.UUID, p shared.Pagination, f OrderSearchFilter) ([]Order, error)
	// Create allocates the order code and inserts the header and lines
	// atomically. Sequence lock timeouts surface as CONTENTION.
	Create(ctx context.Context, order *Order) error
	// Update rewrites the header under an optimistic version check and
	// replaces the full line set. A version mismatch surfaces as
	// CONTENTION.
	Update(ctx context.Context, order *Order) error
	// SoftDelete marks an active order inactive. Returns NOT_FOUND when
	// the order is absent or already inactive, IS_BEING_USED when the
	// store reports a foreign key in use.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository persists replicated companies.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByName(ctx context.Context, name string) (*Company, error)
	Search(ctx context.Context, p shared.Pagination, name string) ([]Company, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, company *Company) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// UserRepository persists replicated users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Search(ctx context.Context, companyID uuid.UUID, p shared.Pagination, name string) ([]User, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, user *User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository persists the sellable catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*Product, error)
	// FindActiveByIDs returns the subset of ids that resolve to active
	// products; callers compare lengths to detect unknown references.
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	Search(ctx context.Context, companyID uuid.UUID, p shared.Pagination, name string) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
