package handler

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records-api/internal/config"
	"github.com/iliyamo/academic-records-api/internal/middleware"
	"github.com/iliyamo/academic-records-api/internal/queue"
	"github.com/iliyamo/academic-records-api/internal/repository"
	"github.com/iliyamo/academic-records-api/internal/utils"
)

// emailRx accepts the usual local@domain.tld shape. It is deliberately
// loose; the unique index on users.email is the real gatekeeper.
var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// AuthHandler bundles dependencies for the auth endpoints. Publish is
// optional; when set, successful registrations are announced on the
// message queue without blocking the request.
type AuthHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Publish func(ctx context.Context, ev queue.UserRegisteredEvent) error
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profilePart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// Register handles POST /auth/register: validate, hash, insert. The
// response never includes the digest or a token; a fresh account still
// has to log in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var errs []string
	if !emailRx.MatchString(req.Email) {
		errs = append(errs, "Invalid email format")
	}
	if len(req.Password) < minPasswordLen {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		// Shape failures never reach the store.
		return respondValidation(c, http.StatusBadRequest, errs)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		// bcrypt only fails on malformed input; anything here is unexpected.
		c.Logger().Errorf("register: hash failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "registration failed")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, hash)
	if err != nil {
		if err == repository.ErrEmailExists {
			return respondErr(c, http.StatusBadRequest, "Email already registered")
		}
		// Internal detail stays in the logs; the client gets an opaque message.
		c.Logger().Errorf("register: insert failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "registration failed")
	}

	if h.Publish != nil {
		ev := queue.UserRegisteredEvent{
			UserID:       uid,
			Email:        req.Email,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, ev) // errors are logged by the publisher
		}()
	}

	return respondOK(c, http.StatusCreated, "User registered successfully")
}

// Login handles POST /auth/login: validate, fetch by email, verify the
// candidate against the stored digest, issue a token. Unknown email,
// store failure and wrong password all collapse into one generic 401 so
// responses cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var errs []string
	if !emailRx.MatchString(req.Email) {
		errs = append(errs, "Invalid email format")
	}
	if req.Password == "" {
		errs = append(errs, "Password is required")
	}
	if len(errs) > 0 {
		return respondValidation(c, http.StatusBadRequest, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return respondErr(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return respondErr(c, http.StatusUnauthorized, "Invalid credentials")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		c.Logger().Errorf("login: token signing failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"token":   access.Token,
	})
}

// Profile handles GET /profile. The access guard already verified the
// token and attached the identity; this handler only echoes it back.
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, _ := c.Get(middleware.CtxUserID).(uint64)
	email, _ := c.Get(middleware.CtxEmail).(string)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Access granted",
		"user":    profilePart{ID: uid, Email: email},
	})
}
