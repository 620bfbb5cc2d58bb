package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/academic-records-api/internal/config"
	"github.com/iliyamo/academic-records-api/internal/handler"
	"github.com/iliyamo/academic-records-api/internal/repository"
	"github.com/iliyamo/academic-records-api/internal/router"
	"github.com/iliyamo/academic-records-api/internal/utils"
)

const (
	insertUserSQL = "INSERT INTO users (email, password_hash) VALUES (?,?)"
	selectUserSQL = "SELECT id,email,password_hash,created_at FROM users WHERE email=? LIMIT 1"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "handler-test-secret",
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
	}
}

// newAuthEnv wires an Echo instance with the real router and an
// AuthHandler backed by a mocked database.
func newAuthEnv(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := testConfig()
	a := handler.NewAuthHandler(cfg, repository.NewUserRepo(db))

	e := echo.New()
	router.RegisterAuth(e, a, cfg.JWTSecret)
	return e, mock
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegister_ValidationFailuresSkipStore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"not-an-email","password":"secret1"}`},
		{"short password", `{"email":"a@x.com","password":"12345"}`},
		{"both invalid", `{"email":"nope","password":"1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, mock := newAuthEnv(t)

			rec := postJSON(e, "/auth/register", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp struct {
				Success bool     `json:"success"`
				Errors  []string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Errors)
			// No queries may have been issued for malformed input.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	e, mock := newAuthEnv(t)
	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := postJSON(e, "/auth/register", `{"email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Token, "register must not hand out a token")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	e, mock := newAuthEnv(t)
	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com'"})

	rec := postJSON(e, "/auth/register", `{"email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
	// The raw driver message must not leak to the client.
	assert.NotContains(t, rec.Body.String(), "Duplicate entry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_StoreErrorIsOpaque(t *testing.T) {
	t.Parallel()

	e, mock := newAuthEnv(t)
	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'academic.users' doesn't exist"})

	rec := postJSON(e, "/auth/register", `{"email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "doesn't exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	hash, err := utils.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	// Unknown email: the store returns no row.
	e1, mock1 := newAuthEnv(t)
	mock1.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))
	rec1 := postJSON(e1, "/auth/login", `{"email":"ghost@x.com","password":"secret1"}`)

	// Known email, wrong password.
	e2, mock2 := newAuthEnv(t)
	mock2.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(1, "a@x.com", hash, time.Now()))
	rec2 := postJSON(e2, "/auth/login", `{"email":"a@x.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec1.Code)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.JSONEq(t, rec1.Body.String(), rec2.Body.String(),
		"responses must not reveal whether the email exists")
	assert.NoError(t, mock1.ExpectationsWereMet())
	assert.NoError(t, mock2.ExpectationsWereMet())
}

func TestLogin_StoreErrorIsGenericUnauthorized(t *testing.T) {
	t.Parallel()

	e, mock := newAuthEnv(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("a@x.com").
		WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'academic.users' doesn't exist"})

	rec := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_ValidationFailures(t *testing.T) {
	t.Parallel()

	e, mock := newAuthEnv(t)

	rec := postJSON(e, "/auth/login", `{"email":"not-an-email","password":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRegisterLoginProfile_Scenario walks the whole flow: register a
// user, log in with the same credentials, present the issued token to
// /profile, and finally fail a login with the wrong password.
func TestRegisterLoginProfile_Scenario(t *testing.T) {
	t.Parallel()

	hash, err := utils.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	e, mock := newAuthEnv(t)
	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(1, "a@x.com", hash, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(1, "a@x.com", hash, time.Now()))

	// Register.
	rec := postJSON(e, "/auth/register", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Login.
	rec = postJSON(e, "/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var loginResp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	require.True(t, loginResp.Success)
	require.NotEmpty(t, loginResp.Token)

	// Profile with the freshly issued token.
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	prec := httptest.NewRecorder()
	e.ServeHTTP(prec, req)
	require.Equal(t, http.StatusOK, prec.Code)
	var profileResp struct {
		Success bool `json:"success"`
		User    struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(prec.Body.Bytes(), &profileResp))
	assert.Equal(t, uint64(1), profileResp.User.ID)
	assert.Equal(t, "a@x.com", profileResp.User.Email)

	// Wrong password is a generic 401.
	rec = postJSON(e, "/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfile_RequiresToken(t *testing.T) {
	t.Parallel()

	e, _ := newAuthEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
