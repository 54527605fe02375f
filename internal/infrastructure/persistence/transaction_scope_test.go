package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	appbilling "github.com/pressworks/backend/internal/application/billing"
	"github.com/pressworks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	customer := seedCustomer(t, db, "Acme")
	size := seedProductSize(t, db, "A4", "100")
	order := seedOrder(t, db, customer.ID, "2024-01-10", size, "1")

	boom := errors.New("boom")
	err := scope.Execute(ctx, func(repos appbilling.TransactionalRepositories) error {
		if err := repos.OrderRepo().LinkInvoice(ctx, order.ID, uuid.New()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	reloaded, err := NewGormOrderRepository(db).FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.InvoiceID)
}

func TestGormTransactionScope_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	customer := seedCustomer(t, db, "Acme")

	err := scope.Execute(ctx, func(repos appbilling.TransactionalRepositories) error {
		c, err := repos.CustomerRepo().FindByID(ctx, customer.ID)
		if err != nil {
			return err
		}
		c.Archive()
		return repos.CustomerRepo().Save(ctx, c)
	})
	require.NoError(t, err)

	reloaded, err := NewGormCustomerRepository(db).FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Archived())
}

func TestGormTransactionScope_StorageFailureRollsBack(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	scope := NewGormTransactionScope(gormDB)
	err = scope.Execute(context.Background(), func(repos appbilling.TransactionalRepositories) error {
		return repos.OrderRepo().LinkInvoice(context.Background(), uuid.New(), uuid.New())
	})

	require.Error(t, err)
	assert.False(t, shared.IsDomainError(err, shared.CodeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}
