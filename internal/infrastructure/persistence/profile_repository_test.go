package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dashboard/backend/internal/domain/identity"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockProfileRepository(t *testing.T) (*GormProfileRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockGormDB(t)
	return NewGormProfileRepository(gormDB), mock, mockDB
}

func TestGormProfileRepository_FindByID(t *testing.T) {
	t.Run("finds profile by id", func(t *testing.T) {
		repo, mock, mockDB := newMockProfileRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		now := time.Now()
		fullName := "Ada Lovelace"

		rows := sqlmock.NewRows([]string{"id", "full_name", "created_at", "updated_at"}).
			AddRow(ownerID, fullName, now, now)

		mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID.String(), 1).
			WillReturnRows(rows)

		profile, err := repo.FindByID(context.Background(), ownerID)

		require.NoError(t, err)
		assert.Equal(t, ownerID, profile.ID)
		require.NotNil(t, profile.FullName)
		assert.Equal(t, fullName, *profile.FullName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing profile reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockProfileRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID.String(), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		profile, err := repo.FindByID(context.Background(), ownerID)

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProfileRepository_Insert(t *testing.T) {
	t.Run("inserts new profile", func(t *testing.T) {
		repo, mock, mockDB := newMockProfileRepository(t)
		defer mockDB.Close()

		profile := identity.NewProfile(uuid.New(), nil)

		mock.ExpectExec(`INSERT INTO "profiles"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Insert(context.Background(), profile)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver unique violation maps to already exists", func(t *testing.T) {
		repo, mock, mockDB := newMockProfileRepository(t)
		defer mockDB.Close()

		profile := identity.NewProfile(uuid.New(), nil)

		mock.ExpectExec(`INSERT INTO "profiles"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "profiles_pkey"})

		err := repo.Insert(context.Background(), profile)

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translated duplicate key maps to already exists", func(t *testing.T) {
		repo, mock, mockDB := newMockProfileRepository(t)
		defer mockDB.Close()

		profile := identity.NewProfile(uuid.New(), nil)

		mock.ExpectExec(`INSERT INTO "profiles"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err := repo.Insert(context.Background(), profile)

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other insert errors pass through", func(t *testing.T) {
		repo, mock, mockDB := newMockProfileRepository(t)
		defer mockDB.Close()

		profile := identity.NewProfile(uuid.New(), nil)

		mock.ExpectExec(`INSERT INTO "profiles"`).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		err := repo.Insert(context.Background(), profile)

		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
