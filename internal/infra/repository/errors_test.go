package repository

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	repo "storefront/internal/repository"
)

func TestMapWriteErr(t *testing.T) {
	require.NoError(t, mapWriteErr(nil, "op"))

	err := mapWriteErr(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}, "create user")
	assert.ErrorIs(t, err, repo.ErrConflict)

	err = mapWriteErr(gorm.ErrDuplicatedKey, "create user")
	assert.ErrorIs(t, err, repo.ErrConflict)

	cause := errors.New("connection reset")
	err = mapWriteErr(cause, "create user")
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, repo.ErrConflict)
	assert.Contains(t, err.Error(), "create user")
}

func TestMapReadErr(t *testing.T) {
	require.NoError(t, mapReadErr(nil, "op"))
	assert.ErrorIs(t, mapReadErr(gorm.ErrRecordNotFound, "find"), repo.ErrNotFound)

	err := mapReadErr(&pgconn.PgError{Code: "57014"}, "find")
	assert.NotErrorIs(t, err, repo.ErrNotFound)
}
