package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormDB creates a gorm DB backed by a mocked SQL connection
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockIngredientRepository(t *testing.T) (*GormIngredientRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockGormDB(t)
	return NewGormIngredientRepository(gormDB), mock, mockDB
}

func TestGormIngredientRepository_FindByID(t *testing.T) {
	t.Run("finds existing ingredient", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()
		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "category_id", "name", "unit",
			"current_stock", "min_stock", "max_stock", "is_active", "version",
		}).AddRow(
			ingredientID, categoryID, "Flour", "kg",
			decimal.NewFromInt(30), decimal.NewFromInt(10), decimal.NewFromInt(500), true, 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "ingredients" WHERE id = \$1`).
			WithArgs(ingredientID, 1).
			WillReturnRows(rows)

		ing, err := repo.FindByID(context.Background(), ingredientID)

		assert.NoError(t, err)
		assert.NotNil(t, ing)
		assert.Equal(t, ingredientID, ing.ID)
		assert.Equal(t, categoryID, ing.CategoryID)
		assert.Equal(t, "Flour", ing.Name)
		assert.True(t, ing.CurrentStock.Equal(decimal.NewFromInt(30)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent ingredient", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "ingredients" WHERE id = \$1`).
			WithArgs(ingredientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		ing, err := repo.FindByID(context.Background(), ingredientID)

		assert.Error(t, err)
		assert.Nil(t, ing)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormIngredientRepository_FindByIDs(t *testing.T) {
	t.Run("finds multiple ingredients by IDs", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()
		id1 := uuid.New()
		id2 := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "category_id", "name", "unit",
			"current_stock", "min_stock", "max_stock", "is_active", "version",
		}).
			AddRow(id1, categoryID, "Flour", "kg", decimal.NewFromInt(30), decimal.Zero, decimal.Zero, true, 1).
			AddRow(id2, categoryID, "Sugar", "kg", decimal.NewFromInt(12), decimal.Zero, decimal.Zero, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "ingredients" WHERE id IN \(\$1,\$2\)`).
			WithArgs(id1, id2).
			WillReturnRows(rows)

		ingredients, err := repo.FindByIDs(context.Background(), []uuid.UUID{id1, id2})

		assert.NoError(t, err)
		assert.Len(t, ingredients, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for empty IDs", func(t *testing.T) {
		repo, _, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredients, err := repo.FindByIDs(context.Background(), []uuid.UUID{})

		assert.NoError(t, err)
		assert.Empty(t, ingredients)
	})
}

func TestGormIngredientRepository_AdjustStock(t *testing.T) {
	t.Run("applies an in-database increment", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()
		delta := decimal.NewFromInt(50)

		mock.ExpectExec(`UPDATE "ingredients" SET "current_stock"=current_stock \+ \$1 WHERE id = \$2`).
			WithArgs(delta, ingredientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustStock(context.Background(), ingredientID, delta)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies a negative delta", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()
		delta := decimal.NewFromInt(-20)

		mock.ExpectExec(`UPDATE "ingredients" SET "current_stock"=current_stock \+ \$1 WHERE id = \$2`).
			WithArgs(delta, ingredientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustStock(context.Background(), ingredientID, delta)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing ingredient", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()

		mock.ExpectExec(`UPDATE "ingredients" SET "current_stock"=current_stock \+ \$1 WHERE id = \$2`).
			WithArgs(decimal.NewFromInt(5), ingredientID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AdjustStock(context.Background(), ingredientID, decimal.NewFromInt(5))

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormIngredientRepository_SaveWithLock(t *testing.T) {
	t.Run("updates catalog fields at the expected version", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ing, err := ingredient.NewIngredient(uuid.New(), "Flour", "kg", decimal.NewFromInt(10), decimal.NewFromInt(500))
		require.NoError(t, err)
		require.NoError(t, ing.UpdateDetails("Bread Flour", "kg", decimal.NewFromInt(10), decimal.NewFromInt(500)))

		mock.ExpectExec(`UPDATE "ingredients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), ing)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when the stored version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ing, err := ingredient.NewIngredient(uuid.New(), "Flour", "kg", decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, ing.UpdateDetails("Bread Flour", "kg", decimal.Zero, decimal.Zero))

		mock.ExpectExec(`UPDATE "ingredients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), ing)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormIngredientRepository_Delete(t *testing.T) {
	t.Run("deletes existing ingredient", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "ingredients" WHERE id = \$1`).
			WithArgs(ingredientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), ingredientID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent ingredient", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		ingredientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "ingredients" WHERE id = \$1`).
			WithArgs(ingredientID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), ingredientID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormIngredientRepository_Count(t *testing.T) {
	t.Run("counts ingredients for a category", func(t *testing.T) {
		repo, mock, mockDB := newMockIngredientRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "ingredients" WHERE category_id = \$1`).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background(), shared.Filter{
			Filters: map[string]interface{}{"category_id": categoryID},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func newMockCategoryRepository(t *testing.T) (*GormCategoryRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockGormDB(t)
	return NewGormCategoryRepository(gormDB), mock, mockDB
}

func TestGormCategoryRepository_FindByID(t *testing.T) {
	t.Run("finds existing category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "description", "is_active", "version"}).
			AddRow(categoryID, "Dry Goods", "Flour, sugar, grains", true, 1)

		mock.ExpectQuery(`SELECT \* FROM "ingredient_categories" WHERE id = \$1`).
			WithArgs(categoryID, 1).
			WillReturnRows(rows)

		category, err := repo.FindByID(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.Equal(t, categoryID, category.ID)
		assert.Equal(t, "Dry Goods", category.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "ingredient_categories" WHERE id = \$1`).
			WithArgs(categoryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.FindByID(context.Background(), categoryID)

		assert.Error(t, err)
		assert.Nil(t, category)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_Delete(t *testing.T) {
	t.Run("returns error for non-existent category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectExec(`DELETE FROM "ingredient_categories" WHERE id = \$1`).
			WithArgs(categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), categoryID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormIngredientRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements ingredient repositories", func(t *testing.T) {
		gormDB, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		var _ ingredient.Repository = NewGormIngredientRepository(gormDB)
		var _ ingredient.CategoryRepository = NewGormCategoryRepository(gormDB)
	})
}
