package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestUserCreate_NormalizesEmail(t *testing.T) {
	t.Parallel()

	r, mock := newUserRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (email, password_hash) VALUES (?,?)")).
		WithArgs("a@x.com", "digest").
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := r.Create(context.Background(), "  A@X.com ", "digest")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()

	r, mock := newUserRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (email, password_hash) VALUES (?,?)")).
		WithArgs("a@x.com", "digest").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := r.Create(context.Background(), "a@x.com", "digest")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_OtherErrorsPassThrough(t *testing.T) {
	t.Parallel()

	r, mock := newUserRepo(t)
	driverErr := &mysql.MySQLError{Number: 1146, Message: "missing table"}
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (email, password_hash) VALUES (?,?)")).
		WithArgs("a@x.com", "digest").
		WillReturnError(driverErr)

	_, err := r.Create(context.Background(), "a@x.com", "digest")
	assert.NotErrorIs(t, err, ErrEmailExists)
	assert.ErrorAs(t, err, &driverErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmail(t *testing.T) {
	t.Parallel()

	r, mock := newUserRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id,email,password_hash,created_at FROM users WHERE email=? LIMIT 1")).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(5, "a@x.com", "digest", time.Now()))

	u, err := r.GetByEmail(context.Background(), "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), u.ID)
	assert.Equal(t, "digest", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
