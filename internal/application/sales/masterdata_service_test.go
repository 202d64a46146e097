package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
)

func TestCompanyService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a company with a fresh id", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		service := NewCompanyService(companies, zap.NewNop())

		companies.On("FindByName", mock.Anything, "ACME").Return(nil, shared.ErrNotFound)
		companies.On("Save", mock.Anything, mock.AnythingOfType("*sales.Company")).Return(nil)

		resp, err := service.Save(ctx, CompanyRequest{Name: "ACME"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "ACME", resp.Name)
		companies.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		service := NewCompanyService(companies, zap.NewNop())

		companies.On("FindByName", mock.Anything, "ACME").
			Return(&domain.Company{ID: uuid.New(), Name: "ACME"}, nil)

		_, err := service.Save(ctx, CompanyRequest{Name: "ACME"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		companies.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("allows renaming a company to its own name", func(t *testing.T) {
		companies := new(MockCompanyRepository)
		service := NewCompanyService(companies, zap.NewNop())
		id := uuid.New()

		companies.On("FindByName", mock.Anything, "ACME").
			Return(&domain.Company{ID: id, Name: "ACME"}, nil)
		companies.On("Save", mock.Anything, mock.AnythingOfType("*sales.Company")).Return(nil)

		_, err := service.Save(ctx, CompanyRequest{ID: id.String(), Name: "ACME"})

		assert.NoError(t, err)
	})
}

func TestUserService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a duplicate email", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewUserService(users, zap.NewNop())

		users.On("FindByEmail", mock.Anything, "alice@example.com").
			Return(&domain.User{ID: uuid.New(), Email: "alice@example.com"}, nil)

		_, err := service.Save(ctx, UserRequest{
			CompanyID: uuid.New().String(),
			Name:      "ALICE",
			Email:     "alice@example.com",
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("creates a user", func(t *testing.T) {
		users := new(MockUserRepository)
		service := NewUserService(users, zap.NewNop())

		users.On("FindByEmail", mock.Anything, "bob@example.com").Return(nil, shared.ErrNotFound)
		users.On("Save", mock.Anything, mock.AnythingOfType("*sales.User")).Return(nil)

		resp, err := service.Save(ctx, UserRequest{
			CompanyID: uuid.New().String(),
			Name:      "BOB",
			Email:     "bob@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", resp.Email)
	})
}

func TestProductService(t *testing.T) {
	ctx := context.Background()

	t.Run("save emits a productUpdate message", func(t *testing.T) {
		products := new(MockProductRepository)
		gateway := &MockGateway{}
		service := NewProductService(products, gateway, zap.NewNop())
		companyID := uuid.New()

		products.On("FindByName", mock.Anything, companyID, "WIDGET").Return(nil, shared.ErrNotFound)
		products.On("Save", mock.Anything, mock.AnythingOfType("*sales.Product")).Return(nil)

		resp, err := service.Save(ctx, ProductRequest{
			CompanyID: companyID.String(),
			Name:      "WIDGET",
			Cost:      decimal.NewFromInt(10),
			Price:     decimal.NewFromInt(20),
		})

		require.NoError(t, err)
		require.Len(t, gateway.Sent, 1)
		assert.Equal(t, "productUpdate", gateway.Sent[0].Process)

		var payload ProductResponse
		require.NoError(t, gateway.Sent[0].DecodePayload(&payload))
		assert.Equal(t, resp.ID, payload.ID)
		assert.Equal(t, "WIDGET", payload.Name)
	})

	t.Run("remove emits a productDelete message", func(t *testing.T) {
		products := new(MockProductRepository)
		gateway := &MockGateway{}
		service := NewProductService(products, gateway, zap.NewNop())
		id := uuid.New()

		products.On("SoftDelete", mock.Anything, id).Return(nil)

		require.NoError(t, service.Remove(ctx, id))
		require.Len(t, gateway.Sent, 1)
		assert.Equal(t, "productDelete", gateway.Sent[0].Process)
	})

	t.Run("rejects a duplicate name within the company", func(t *testing.T) {
		products := new(MockProductRepository)
		gateway := &MockGateway{}
		service := NewProductService(products, gateway, zap.NewNop())
		companyID := uuid.New()

		products.On("FindByName", mock.Anything, companyID, "WIDGET").
			Return(&domain.Product{ID: uuid.New(), Name: "WIDGET"}, nil)

		_, err := service.Save(ctx, ProductRequest{CompanyID: companyID.String(), Name: "WIDGET"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Empty(t, gateway.Sent)
	})
}
