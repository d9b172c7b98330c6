package mocks

import (
	"context"

	"github.com/cradoe/crm/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Exists(ctx context.Context, kind models.EntityKind, id string) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistry) Describe(ctx context.Context, kind models.EntityKind, id string) (*models.RelatedEntity, error) {
	args := m.Called(ctx, kind, id)
	related, _ := args.Get(0).(*models.RelatedEntity)
	return related, args.Error(1)
}

// MockTx runs fn without a transaction so repository mocks receive a nil *sqlx.Tx.
type MockTx struct{}

func (MockTx) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}
