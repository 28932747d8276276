package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ludo/bugtrack/internal/domain"
	"github.com/ludo/bugtrack/internal/validate"
)

var (
	bugCreateAllowedKeys = []string{"title", "description", "priority", "status", "due_date"}
	bugUpdateAllowedKeys = []string{"title", "description", "priority", "status", "due_date", "end_date"}
	bugRequiredKeys      = []string{"title"}

	bugSchema = validate.Schema{
		"title":       {Kind: validate.String},
		"description": {Kind: validate.NullableString},
		"priority":    {Kind: validate.Int},
		"status":      {Kind: validate.Enum, Values: domain.BugStatusValues},
		"due_date":    {Kind: validate.Date},
		"end_date":    {Kind: validate.Date},
	}
)

// BugHandler handles bug CRUD endpoints.
type BugHandler struct {
	bugs     BugStore
	projects ProjectStore
}

// NewBugHandler creates a new BugHandler.
func NewBugHandler(bugs BugStore, projects ProjectStore) *BugHandler {
	return &BugHandler{bugs: bugs, projects: projects}
}

// ListByProject returns every bug of the path's project.
func (h *BugHandler) ListByProject(c echo.Context) error {
	projectID, err := parseID(c, "projectId", "Unvalid projectId")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, err := h.projects.FindByID(ctx, projectID); err != nil {
		return err
	}

	bugs, err := h.bugs.FindByProject(ctx, projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bugs)
}

// Get returns one bug.
func (h *BugHandler) Get(c echo.Context) error {
	id, err := parseID(c, "bugId", "Unvalid id")
	if err != nil {
		return err
	}

	bug, err := h.bugs.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bug)
}

// Create validates the body and files a new bug under the path's project.
// The project must exist; priority defaults to 1 and status to open.
func (h *BugHandler) Create(c echo.Context) error {
	projectID, err := parseID(c, "projectId", "Unvalid projectId")
	if err != nil {
		return err
	}

	body := decodeBody(c)

	if validate.BodyIsEmpty(body) {
		return domain.BadRequest("Body missing.")
	}
	if !validate.KeysAllowed(body, bugCreateAllowedKeys) || !validate.RequiredKeysPresent(body, bugRequiredKeys) {
		return domain.BadRequest("Some keys are invalid or missing.")
	}
	if !bugSchema.Check(body) {
		return domain.BadRequest("Some values are invalid.")
	}

	ctx := c.Request().Context()

	if _, err := h.projects.FindByID(ctx, projectID); err != nil {
		return err
	}

	bug := domain.Bug{
		ProjectID: projectID,
		Priority:  1,
		Status:    domain.BugStatusOpen,
	}
	bug.Title, _ = stringValue(body, "title")
	bug.Description, _ = stringPtrValue(body, "description")
	if priority, ok := intValue(body, "priority"); ok {
		bug.Priority = priority
	}
	if status, ok := stringValue(body, "status"); ok {
		bug.Status = domain.BugStatus(status)
	}
	if dueDate, ok := dateValue(body, "due_date"); ok {
		bug.DueDate = dueDate
	}

	created, err := h.bugs.Create(ctx, bug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, created)
}

// Update validates the partial body, merges it onto the stored bug, and
// saves it. The owning project never changes.
func (h *BugHandler) Update(c echo.Context) error {
	id, err := parseID(c, "bugId", "Unvalid id")
	if err != nil {
		return err
	}

	body := decodeBody(c)

	if validate.BodyIsEmpty(body) {
		return domain.BadRequest("Body missing.")
	}
	if !validate.KeysAllowed(body, bugUpdateAllowedKeys) {
		return domain.BadRequest("Some keys are not allowed.")
	}
	if !bugSchema.Check(body) {
		return domain.BadRequest("Some values are invalid.")
	}

	ctx := c.Request().Context()

	bug, err := h.bugs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if title, ok := stringValue(body, "title"); ok {
		bug.Title = title
	}
	if description, ok := stringPtrValue(body, "description"); ok {
		bug.Description = description
	}
	if priority, ok := intValue(body, "priority"); ok {
		bug.Priority = priority
	}
	if status, ok := stringValue(body, "status"); ok {
		bug.Status = domain.BugStatus(status)
	}
	if dueDate, ok := dateValue(body, "due_date"); ok {
		bug.DueDate = dueDate
	}
	if endDate, ok := dateValue(body, "end_date"); ok {
		bug.EndDate = endDate
	}

	updated, err := h.bugs.Update(ctx, *bug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete removes a bug.
func (h *BugHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "bugId", "Unvalid id")
	if err != nil {
		return err
	}

	if err := h.bugs.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}
