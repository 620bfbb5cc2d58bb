package handler_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/academic-records-api/internal/handler"
	"github.com/iliyamo/academic-records-api/internal/repository"
	"github.com/iliyamo/academic-records-api/internal/router"
)

func newStudentEnv(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	e := echo.New()
	router.RegisterStudents(e, handler.NewStudentHandler(repository.NewStudentRepo(db)), nil)
	return e, mock
}

func TestStudentsList(t *testing.T) {
	t.Parallel()

	e, mock := newStudentEnv(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id,name,major,deleted_at FROM student WHERE deleted_at IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "major", "deleted_at"}).
			AddRow(1, "Ada", "CS", nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/students", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully fetched data")
	assert.Contains(t, rec.Body.String(), "Ada")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentsCreate_RequiresNameAndMajor(t *testing.T) {
	t.Parallel()

	e, mock := newStudentEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/students",
		strings.NewReader(`{"name":"","major":"CS"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name and major are required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentsDelete_NotFound(t *testing.T) {
	t.Parallel()

	e, mock := newStudentEnv(t)
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE student SET deleted_at=? WHERE id=? AND deleted_at IS NULL")).
		WithArgs(sqlmock.AnyArg(), 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodDelete, "/v1/students/9", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student not found or already deleted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentsGet_InvalidID(t *testing.T) {
	t.Parallel()

	e, mock := newStudentEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/students/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
