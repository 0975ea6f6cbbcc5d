package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s *Store) (*Store, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Store), args.Error(1)
}

// --- Tests ---

func TestService_CreateStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expected := &Store{ID: 1, OwnerID: 7, Name: "Fresh Farm", Slug: "fresh-farm"}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*store.Store")).Return(expected, nil)

		res, err := svc.CreateStore(ctx, 7, "Fresh Farm", "fresh-farm", nil)
		assert.NoError(t, err)
		assert.Equal(t, expected, res)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyName", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.CreateStore(ctx, 7, "", "fresh-farm", nil)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("SlugTaken", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*store.Store")).Return(nil, ErrSlugTaken)

		_, err := svc.CreateStore(ctx, 7, "Fresh Farm", "fresh-farm", nil)
		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestService_CheckOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(3)).Return(&Store{ID: 3, OwnerID: 7}, nil)

		st, err := svc.CheckOwnership(ctx, 3, 7)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), st.ID)
	})

	t.Run("NotOwner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(3)).Return(&Store{ID: 3, OwnerID: 99}, nil)

		_, err := svc.CheckOwnership(ctx, 3, 7)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, uint(3)).Return(nil, ErrStoreNotFound)

		_, err := svc.CheckOwnership(ctx, 3, 7)
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}

func TestService_ListSellerStores(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("ListByOwner", ctx, uint(7)).Return([]*Store{{ID: 1}, {ID: 2}}, nil)

	res, err := svc.ListSellerStores(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestService_GetStoreBySlug(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("GetBySlug", ctx, "fresh-farm").Return(nil, errors.New("db error"))

	_, err := svc.GetStoreBySlug(ctx, "fresh-farm")
	assert.Error(t, err)
}
