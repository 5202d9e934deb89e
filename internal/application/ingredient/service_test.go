package ingredient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIngredientRepository is a mock implementation of ingredient.Repository
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ingredient.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIngredientRepository) Save(ctx context.Context, ing *ingredient.Ingredient) error {
	args := m.Called(ctx, ing)
	return args.Error(0)
}

func (m *MockIngredientRepository) SaveWithLock(ctx context.Context, ing *ingredient.Ingredient) error {
	args := m.Called(ctx, ing)
	return args.Error(0)
}

func (m *MockIngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIngredientRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of ingredient.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingredient.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ingredient.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ingredient.Category), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *ingredient.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newService() (*Service, *MockIngredientRepository, *MockCategoryRepository) {
	ingredientRepo := new(MockIngredientRepository)
	categoryRepo := new(MockCategoryRepository)
	return NewService(ingredientRepo, categoryRepo), ingredientRepo, categoryRepo
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates ingredient with zero stock", func(t *testing.T) {
		svc, ingredientRepo, categoryRepo := newService()

		category, err := ingredient.NewCategory("Baking", "")
		require.NoError(t, err)
		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		ingredientRepo.On("Save", ctx, mock.AnythingOfType("*ingredient.Ingredient")).Return(nil)

		resp, err := svc.Create(ctx, CreateIngredientRequest{
			CategoryID: category.ID,
			Name:       "Flour",
			Unit:       "kg",
			MinStock:   decimal.NewFromInt(30),
			MaxStock:   decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.True(t, resp.CurrentStock.IsZero())
		assert.True(t, resp.IsActive)
	})

	t.Run("unknown category fails", func(t *testing.T) {
		svc, ingredientRepo, categoryRepo := newService()

		categoryID := uuid.New()
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateIngredientRequest{CategoryID: categoryID, Name: "Flour", Unit: "kg"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		ingredientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps unset fields and never touches stock", func(t *testing.T) {
		svc, ingredientRepo, _ := newService()

		ing, err := ingredient.NewIngredient(uuid.New(), "Flour", "kg", decimal.NewFromInt(30), decimal.NewFromInt(100))
		require.NoError(t, err)
		ing.CurrentStock = decimal.NewFromInt(42)

		newName := "Bread Flour"
		ingredientRepo.On("FindByID", ctx, ing.ID).Return(ing, nil)
		ingredientRepo.On("SaveWithLock", ctx, ing).Return(nil)

		resp, err := svc.Update(ctx, ing.ID, UpdateIngredientRequest{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Bread Flour", resp.Name)
		assert.Equal(t, "kg", resp.Unit)
		assert.True(t, resp.CurrentStock.Equal(decimal.NewFromInt(42)))
		ingredientRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent edit surfaces the conflict", func(t *testing.T) {
		svc, ingredientRepo, _ := newService()

		ing, err := ingredient.NewIngredient(uuid.New(), "Flour", "kg", decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		newUnit := "g"
		ingredientRepo.On("FindByID", ctx, ing.ID).Return(ing, nil)
		ingredientRepo.On("SaveWithLock", ctx, ing).Return(shared.ErrConcurrencyConflict)

		_, err = svc.Update(ctx, ing.ID, UpdateIngredientRequest{Unit: &newUnit})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("below-minimum filter uses the dedicated query", func(t *testing.T) {
		svc, ingredientRepo, _ := newService()

		below := true
		ingredientRepo.On("FindBelowMinimum", ctx, mock.AnythingOfType("shared.Filter")).Return([]ingredient.Ingredient{}, nil)
		ingredientRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		_, err := svc.List(ctx, IngredientListFilter{BelowMinimum: &below})
		require.NoError(t, err)
		ingredientRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}
