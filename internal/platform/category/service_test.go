package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mscaglia/finbook/internal/platform/category"
)

// MockCategoryRepository is a mock implementation of category.Repository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		catName     string
		kind        category.Kind
		setupMock   func(*MockCategoryRepository)
		expectedErr error
	}{
		{
			name:    "valid category",
			catName: "Rent",
			kind:    category.KindExpense,
			setupMock: func(m *MockCategoryRepository) {
				m.On("ExistsByName", ctx, "Rent", uuid.Nil).Return(false, nil)
				m.On("Create", ctx, mock.AnythingOfType("*category.Category")).Return(nil)
			},
		},
		{
			name:    "duplicate name regardless of case",
			catName: "rent",
			kind:    category.KindExpense,
			setupMock: func(m *MockCategoryRepository) {
				m.On("ExistsByName", ctx, "rent", uuid.Nil).Return(true, nil)
			},
			expectedErr: category.ErrDuplicateName,
		},
		{
			name:        "missing name",
			catName:     "",
			kind:        category.KindIncome,
			setupMock:   func(m *MockCategoryRepository) {},
			expectedErr: category.ErrMissingName,
		},
		{
			name:        "invalid kind",
			catName:     "Salary",
			kind:        category.Kind("transfer"),
			setupMock:   func(m *MockCategoryRepository) {},
			expectedErr: category.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCategoryRepository)
			tt.setupMock(repo)
			svc := category.NewService(repo)

			created, err := svc.Create(ctx, tt.catName, tt.kind)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.catName, created.Name)
			assert.Equal(t, tt.kind, created.Kind)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	existing := &category.Category{ID: id, Name: "Rent", Kind: category.KindExpense}

	t.Run("rename excludes own record from uniqueness check", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetByID", ctx, id).Return(existing, nil)
		repo.On("ExistsByName", ctx, "Rent", id).Return(false, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*category.Category")).Return(nil)
		svc := category.NewService(repo)

		updated, err := svc.Update(ctx, id, "Rent", category.KindExpense)
		require.NoError(t, err)
		assert.Equal(t, "Rent", updated.Name)
		repo.AssertExpectations(t)
	})

	t.Run("rename onto another category's name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetByID", ctx, id).Return(existing, nil)
		repo.On("ExistsByName", ctx, "Food", id).Return(true, nil)
		svc := category.NewService(repo)

		_, err := svc.Update(ctx, id, "Food", category.KindExpense)
		assert.ErrorIs(t, err, category.ErrDuplicateName)
	})

	t.Run("unknown category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetByID", ctx, id).Return(nil, category.ErrCategoryNotFound)
		svc := category.NewService(repo)

		_, err := svc.Update(ctx, id, "Rent", category.KindExpense)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	existing := &category.Category{ID: id, Name: "Rent", Kind: category.KindExpense}

	t.Run("refused while referenced by any transaction", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetByID", ctx, id).Return(existing, nil)
		repo.On("InUse", ctx, id).Return(true, nil)
		svc := category.NewService(repo)

		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, category.ErrCategoryInUse)
		repo.AssertNotCalled(t, "Delete", ctx, id)
	})

	t.Run("deleted when unused", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("GetByID", ctx, id).Return(existing, nil)
		repo.On("InUse", ctx, id).Return(false, nil)
		repo.On("Delete", ctx, id).Return(nil)
		svc := category.NewService(repo)

		require.NoError(t, svc.Delete(ctx, id))
		repo.AssertExpectations(t)
	})
}
