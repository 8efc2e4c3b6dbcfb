package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/config"
	"github.com/iliyamo/asset-management/internal/model"
	"github.com/iliyamo/asset-management/internal/repository"
	"github.com/iliyamo/asset-management/internal/utils"
)

// UserHandler implements the admin user-management endpoints.  Route
// middleware restricts every method here to the Admin role.  The token
// repo is needed because a password change revokes the user's sessions.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo) *UserHandler {
	if users == nil || tokens == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type userWriteReq struct {
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phoneNumber"`
	Password    string       `json:"password"`
	CreatedDate string       `json:"createdDate"`
	RoleID      model.RoleID `json:"role_id"`
}

// List handles GET /api/users and returns all users joined with their
// role names.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /api/users.  The password is bcrypt-hashed before
// storage.  Duplicate usernames or emails yield 409.
func (h *UserHandler) Create(c echo.Context) error {
	var req userWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}
	created, ok := utils.NormalizeDate(req.CreatedDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid createdDate"})
	}
	if created == "" {
		created = time.Now().UTC().Format("2006-01-02")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u := model.User{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CreatedDate: created,
		RoleID:      req.RoleID,
	}
	id, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrUserExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already exists"})
		case repository.ErrInvalidRole:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role_id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":          id,
		"username":    req.Username,
		"email":       strings.ToLower(strings.TrimSpace(req.Email)),
		"phoneNumber": req.PhoneNumber,
		"createdDate": created,
		"role_id":     req.RoleID,
	})
}

// Update handles PUT /api/users/:id.  Profile fields and the role are
// rewritten; the password changes only when the body provides one, and
// changing it revokes every active refresh token of the user.  When the
// body omits createdDate the stored date is kept.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req userWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email required"})
	}
	created, ok := utils.NormalizeDate(req.CreatedDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid createdDate"})
	}

	var passwordHash string
	if req.Password != "" {
		var err error
		passwordHash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// An empty createdDate means "leave it alone"; writing '' to a DATE
	// column fails under strict mode.
	if created == "" {
		existing, err := h.Users.GetByID(ctx, id)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		created = existing.CreatedDate
	}

	u := model.User{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CreatedDate: created,
		RoleID:      req.RoleID,
	}
	if err := h.Users.Update(ctx, id, u, passwordHash); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case repository.ErrUserExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already exists"})
		case repository.ErrInvalidRole:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role_id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}

	if passwordHash != "" {
		// A changed password signs the user out everywhere; outstanding
		// access tokens simply run out their short TTL.
		if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":          id,
		"username":    req.Username,
		"email":       strings.ToLower(strings.TrimSpace(req.Email)),
		"phoneNumber": req.PhoneNumber,
		"createdDate": created,
		"role_id":     req.RoleID,
	})
}

// Delete handles DELETE /api/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Usernames handles GET /api/usernames, feeding the owner picker on the
// asset form.
func (h *UserHandler) Usernames(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	names, err := h.Users.Usernames(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, names)
}

// reqCtx derives a bounded context for one database round trip.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
