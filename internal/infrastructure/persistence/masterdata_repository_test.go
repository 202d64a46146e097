package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
)

func TestGormCompanyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	t.Run("save then find by id and name", func(t *testing.T) {
		company := &sales.Company{ID: uuid.New(), Name: "ACME CORP", Active: true}
		require.NoError(t, repo.Save(ctx, company))

		byID, err := repo.FindByID(ctx, company.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME CORP", byID.Name)

		byName, err := repo.FindByName(ctx, "ACME CORP")
		require.NoError(t, err)
		assert.Equal(t, company.ID, byName.ID)
	})

	t.Run("save is an upsert", func(t *testing.T) {
		company := &sales.Company{ID: uuid.New(), Name: "BEFORE", Active: true}
		require.NoError(t, repo.Save(ctx, company))

		company.Name = "AFTER"
		require.NoError(t, repo.Save(ctx, company))

		found, err := repo.FindByID(ctx, company.ID)
		require.NoError(t, err)
		assert.Equal(t, "AFTER", found.Name)
	})

	t.Run("exists active follows soft delete", func(t *testing.T) {
		company := &sales.Company{ID: uuid.New(), Name: "EPHEMERAL", Active: true}
		require.NoError(t, repo.Save(ctx, company))

		exists, err := repo.ExistsActive(ctx, company.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.SoftDelete(ctx, company.ID))

		exists, err = repo.ExistsActive(ctx, company.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.ErrorIs(t, repo.SoftDelete(ctx, company.ID), shared.ErrNotFound)
	})

	t.Run("search matches name substring", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &sales.Company{ID: uuid.New(), Name: "NORTHWIND TRADERS", Active: true}))

		companies, err := repo.Search(ctx, shared.Pagination{}, "northwind")
		require.NoError(t, err)
		require.Len(t, companies, 1)
		assert.Equal(t, "NORTHWIND TRADERS", companies[0].Name)
	})
}

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("save then find by id and email", func(t *testing.T) {
		user := &sales.User{ID: uuid.New(), CompanyID: companyID, Name: "ALICE", Email: "alice@example.com", Active: true}
		require.NoError(t, repo.Save(ctx, user))

		byID, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ALICE", byID.Name)

		byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("search is scoped to company", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &sales.User{
			ID: uuid.New(), CompanyID: uuid.New(), Name: "OUTSIDER", Email: "outsider@example.com", Active: true,
		}))

		users, err := repo.Search(ctx, companyID, shared.Pagination{}, "")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "ALICE", users[0].Name)
	})

	t.Run("soft deleted user disappears", func(t *testing.T) {
		user := &sales.User{ID: uuid.New(), CompanyID: companyID, Name: "BOB", Email: "bob@example.com", Active: true}
		require.NoError(t, repo.Save(ctx, user))
		require.NoError(t, repo.SoftDelete(ctx, user.ID))

		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		exists, err := repo.ExistsActive(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormProductRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("save then find by id and name", func(t *testing.T) {
		product := &sales.Product{
			ID: uuid.New(), CompanyID: companyID, Name: "WIDGET",
			Cost: decimal.NewFromInt(10), Price: decimal.NewFromInt(20), Active: true,
		}
		require.NoError(t, repo.Save(ctx, product))

		byID, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, byID.Price.Equal(decimal.NewFromInt(20)))

		byName, err := repo.FindByName(ctx, companyID, "WIDGET")
		require.NoError(t, err)
		assert.Equal(t, product.ID, byName.ID)
	})

	t.Run("find active by ids returns only active subset", func(t *testing.T) {
		active := &sales.Product{ID: uuid.New(), CompanyID: companyID, Name: "ACTIVE", Active: true}
		inactive := &sales.Product{ID: uuid.New(), CompanyID: companyID, Name: "GONE", Active: true}
		require.NoError(t, repo.Save(ctx, active))
		require.NoError(t, repo.Save(ctx, inactive))
		require.NoError(t, repo.SoftDelete(ctx, inactive.ID))

		products, err := repo.FindActiveByIDs(ctx, []uuid.UUID{active.ID, inactive.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, active.ID, products[0].ID)
	})

	t.Run("find active by ids with empty input", func(t *testing.T) {
		products, err := repo.FindActiveByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("search matches name substring within company", func(t *testing.T) {
		products, err := repo.Search(ctx, companyID, shared.Pagination{}, "widg")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "WIDGET", products[0].Name)
	})
}
