package ingredient

import (
	"context"

	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/ingredient"
	"github.com/restoerp/backend/internal/domain/shared"
)

// Service handles ingredient catalog operations. It never touches
// CurrentStock; that column belongs to the ledger engines.
type Service struct {
	ingredientRepo ingredient.Repository
	categoryRepo   ingredient.CategoryRepository
}

// NewService creates a new ingredient Service
func NewService(ingredientRepo ingredient.Repository, categoryRepo ingredient.CategoryRepository) *Service {
	return &Service{
		ingredientRepo: ingredientRepo,
		categoryRepo:   categoryRepo,
	}
}

// CreateCategory creates an ingredient category
func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := ingredient.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	category.MarkCreated(ctx)
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// UpdateCategory renames a category and optionally toggles its active flag
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}
	category.MarkUpdated(ctx)
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetCategory retrieves a category by ID
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories retrieves categories with pagination
func (s *Service) ListCategories(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		items = append(items, ToCategoryResponse(&categories[idx]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// DeleteCategory removes a category
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}

// Create creates an ingredient with zero stock
func (s *Service) Create(ctx context.Context, req CreateIngredientRequest) (*IngredientResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	ing, err := ingredient.NewIngredient(req.CategoryID, req.Name, req.Unit, req.MinStock, req.MaxStock)
	if err != nil {
		return nil, err
	}
	ing.MarkCreated(ctx)
	if err := s.ingredientRepo.Save(ctx, ing); err != nil {
		return nil, err
	}
	response := ToIngredientResponse(ing)
	return &response, nil
}

// Update applies catalog changes to an ingredient. The save goes
// through the optimistic-lock path so concurrent catalog edits are
// detected; stock adjustments bypass this entirely.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateIngredientRequest) (*IngredientResponse, error) {
	ing, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := ing.Name
	if req.Name != nil {
		name = *req.Name
	}
	unit := ing.Unit
	if req.Unit != nil {
		unit = *req.Unit
	}
	minStock := ing.MinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	maxStock := ing.MaxStock
	if req.MaxStock != nil {
		maxStock = *req.MaxStock
	}
	if err := ing.UpdateDetails(name, unit, minStock, maxStock); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		if err := ing.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			ing.Activate()
		} else {
			ing.Deactivate()
		}
	}

	ing.MarkUpdated(ctx)
	if err := s.ingredientRepo.SaveWithLock(ctx, ing); err != nil {
		return nil, err
	}
	response := ToIngredientResponse(ing)
	return &response, nil
}

// GetByID retrieves an ingredient by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*IngredientResponse, error) {
	ing, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToIngredientResponse(ing)
	return &response, nil
}

// List retrieves ingredients with filtering and pagination
func (s *Service) List(ctx context.Context, filter IngredientListFilter) (*shared.Paginated[IngredientResponse], error) {
	domainFilter := filter.toDomain()

	var (
		ingredients []ingredient.Ingredient
		err         error
	)
	if filter.BelowMinimum != nil && *filter.BelowMinimum {
		ingredients, err = s.ingredientRepo.FindBelowMinimum(ctx, domainFilter)
	} else {
		ingredients, err = s.ingredientRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.ingredientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]IngredientResponse, 0, len(ingredients))
	for idx := range ingredients {
		items = append(items, ToIngredientResponse(&ingredients[idx]))
	}
	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Delete removes an ingredient
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ingredientRepo.Delete(ctx, id)
}
