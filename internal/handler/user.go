package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ludo/bugtrack/internal/domain"
	"github.com/ludo/bugtrack/internal/service"
	"github.com/ludo/bugtrack/internal/validate"
)

var (
	userCreateKeys = []string{"username", "email", "password", "password2"}
	userLoginKeys  = []string{"email", "password"}

	userSchema = validate.Schema{
		"username":  {Kind: validate.String},
		"email":     {Kind: validate.Email},
		"password":  {Kind: validate.String},
		"password2": {Kind: validate.String, MatchField: "password"},
	}
)

// UserHandler handles account endpoints: registration, login, and user CRUD.
type UserHandler struct {
	users UserStore
	auth  *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserStore, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// List returns every user. Password hashes never serialize.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "Unvalid id")
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Create registers a new account. The plaintext password is hashed and never
// stored; email and username must be free.
func (h *UserHandler) Create(c echo.Context) error {
	body := decodeBody(c)

	if validate.BodyIsEmpty(body) {
		return domain.BadRequest("Body missing.")
	}
	if !validate.KeysAllowed(body, userCreateKeys) || !validate.RequiredKeysPresent(body, userCreateKeys) {
		return domain.BadRequest("Some keys are invalid or missing.")
	}
	if !userSchema.Check(body) {
		return domain.BadRequest("Some values are invalid.")
	}

	ctx := c.Request().Context()
	username, _ := stringValue(body, "username")
	email, _ := stringValue(body, "email")
	password, _ := stringValue(body, "password")

	if err := h.checkEmailFree(ctx, email, 0); err != nil {
		return err
	}
	if _, err := h.users.FindByUsername(ctx, username); err == nil {
		return domain.Conflict("Username is not available.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := h.auth.HashPassword(password)
	if err != nil {
		return err
	}

	created, err := h.users.Create(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, created)
}

// Login verifies email and password and returns a bearer token.
func (h *UserHandler) Login(c echo.Context) error {
	body := decodeBody(c)

	if validate.BodyIsEmpty(body) {
		return domain.BadRequest("Body missing.")
	}
	if !validate.KeysAllowed(body, userLoginKeys) || !validate.RequiredKeysPresent(body, userLoginKeys) {
		return domain.BadRequest("Some keys are invalid or missing.")
	}
	if !userSchema.Check(body) {
		return domain.BadRequest("Some values are invalid.")
	}

	email, _ := stringValue(body, "email")
	password, _ := stringValue(body, "password")

	_, token, err := h.auth.Login(c.Request().Context(), email, password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Update merges the partial body onto the target account. Only the account's
// own bearer token may update it; changing the password requires both
// password and password2.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id", "Unvalid id")
	if err != nil {
		return err
	}

	if err := requireSelf(c, id); err != nil {
		return err
	}

	body := decodeBody(c)

	if validate.BodyIsEmpty(body) {
		return domain.BadRequest("Body missing.")
	}

	requiredKeys := []string{}
	if _, hasPw := body["password"]; hasPw {
		requiredKeys = []string{"password", "password2"}
	} else if _, hasPw2 := body["password2"]; hasPw2 {
		requiredKeys = []string{"password", "password2"}
	}

	if !validate.KeysAllowed(body, userCreateKeys) || !validate.RequiredKeysPresent(body, requiredKeys) {
		return domain.BadRequest("Some keys are not allowed or missing.")
	}
	if !userSchema.Check(body) {
		return domain.BadRequest("Some values are invalid.")
	}

	ctx := c.Request().Context()

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if username, ok := stringValue(body, "username"); ok {
		if err := h.checkUsernameFree(ctx, username, id); err != nil {
			return err
		}
		user.Username = username
	}
	if email, ok := stringValue(body, "email"); ok {
		if err := h.checkEmailFree(ctx, email, id); err != nil {
			return err
		}
		user.Email = email
	}
	if password, ok := stringValue(body, "password"); ok {
		hash, err := h.auth.HashPassword(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	updated, err := h.users.Update(ctx, *user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete removes the target account. Only the account's own bearer token may
// delete it.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id", "Unvalid id")
	if err != nil {
		return err
	}

	if err := requireSelf(c, id); err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// requireSelf rejects requests whose authenticated identity differs from the
// target account.
func requireSelf(c echo.Context, id int64) error {
	user, ok := CurrentUser(c)
	if !ok || user.ID != id {
		return domain.ErrUnauthorized
	}
	return nil
}

// checkEmailFree pre-checks the unique email constraint. selfID excludes the
// account being updated; the store constraint remains the backstop under
// concurrent writes.
func (h *UserHandler) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.Conflict("An account with the provided email already exists.")
	}
	return nil
}

// checkUsernameFree pre-checks the unique username constraint on update.
func (h *UserHandler) checkUsernameFree(ctx context.Context, username string, selfID int64) error {
	existing, err := h.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.Conflict("An account with the provided username already exists.")
	}
	return nil
}
