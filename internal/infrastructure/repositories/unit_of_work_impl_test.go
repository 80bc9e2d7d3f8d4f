package repositories

import (
	"context"
	"errors"
	"testing"

	"estate-market.backend/internal/domain/entities"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}
	users := NewUserRepository(db)

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return users.Create(ctx, &entities.User{Name: "Committed", Email: "c@example.com", PasswordHash: "h", Role: entities.UserRoleBuyer})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("users").Count(&count).Error)
	require.Equal(t, int64(1), count)

	err = u.Do(context.Background(), func(ctx context.Context) error {
		if err := users.Create(ctx, &entities.User{Name: "Rolled", Email: "r@example.com", PasswordHash: "h", Role: entities.UserRoleBuyer}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	require.NoError(t, db.Table("users").Count(&count).Error)
	require.Equal(t, int64(1), count, "second insert must be rolled back")
}

func TestUnitOfWork_NestedDoJoinsOuter(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}
	users := NewUserRepository(db)

	err := u.Do(context.Background(), func(ctx context.Context) error {
		outer := GetDB(ctx, db)
		return u.Do(ctx, func(inner context.Context) error {
			require.Same(t, outer, GetDB(inner, db))
			if err := users.Create(inner, &entities.User{Name: "Inner", Email: "i@example.com", PasswordHash: "h", Role: entities.UserRoleBuyer}); err != nil {
				return err
			}
			return errors.New("inner failure")
		})
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Table("users").Count(&count).Error)
	require.Zero(t, count)
}

func TestUnitOfWork_WithLockAndGetDB(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	ctx := u.WithLock(context.Background())
	lockedDB := GetDB(ctx, db)
	require.NotNil(t, lockedDB)
	require.NotSame(t, db, lockedDB)

	plainDB := u.GetDB(context.Background())
	require.Equal(t, db, plainDB)

	tx := db.Begin()
	txCtx := context.WithValue(context.Background(), txKey, tx)
	require.Equal(t, tx, u.GetDB(txCtx))
	tx.Rollback()
}

func TestUnitOfWork_DoBeginFailure(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = u.Do(context.Background(), func(context.Context) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to begin transaction")
}

func TestUnitOfWork_DoCommitFailure_WithHook(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	origCommit := commitTx
	t.Cleanup(func() { commitTx = origCommit })
	commitTx = func(tx *gorm.DB) error {
		tx.Rollback()
		return errors.New("forced commit fail")
	}

	err := u.Do(context.Background(), func(context.Context) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to commit transaction")
}
