package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ludo/bugtrack/internal/domain"
	"github.com/ludo/bugtrack/internal/service"
)

const testSecret = "test-secret"

type testApp struct {
	e     *echo.Echo
	store *memStore
	auth  *service.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := newMemStore()
	auth := service.NewAuthService(memUsers{s: store}, service.AuthConfig{
		JWTSecret:  testSecret,
		BcryptCost: bcrypt.MinCost,
	})

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	RegisterRoutes(e,
		NewProjectHandler(memProjects{s: store}, memBugs{s: store}),
		NewBugHandler(memBugs{s: store}, memProjects{s: store}),
		NewUserHandler(memUsers{s: store}, auth),
		auth,
	)

	return &testApp{e: e, store: store, auth: auth}
}

// request performs an HTTP round trip through the real router, middleware,
// and error handler. A non-nil body is sent as JSON; a non-empty token goes
// into the Authorization header.
func (a *testApp) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeJSON(t, rec)["message"].(string)
	return msg
}

// seedUser registers a user directly in the store with a real bcrypt digest
// and returns it together with a valid bearer token.
func (a *testApp) seedUser(t *testing.T, username, email, password string) (*domain.User, string) {
	t.Helper()

	hash, err := a.auth.HashPassword(password)
	require.NoError(t, err)

	user, err := memUsers{s: a.store}.Create(context.Background(), domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	require.NoError(t, err)

	token, err := a.auth.IssueToken(user.ID)
	require.NoError(t, err)

	return user, token
}

func (a *testApp) seedProject(t *testing.T, title string) *domain.Project {
	t.Helper()
	project, err := memProjects{s: a.store}.Create(context.Background(), domain.Project{Title: title})
	require.NoError(t, err)
	return project
}

func (a *testApp) seedBug(t *testing.T, projectID int64, title string) *domain.Bug {
	t.Helper()
	bug, err := memBugs{s: a.store}.Create(context.Background(), domain.Bug{
		ProjectID: projectID,
		Title:     title,
		Priority:  1,
		Status:    domain.BugStatusOpen,
	})
	require.NoError(t, err)
	return bug
}
