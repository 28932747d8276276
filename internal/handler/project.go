package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ludo/bugtrack/internal/domain"
	"github.com/ludo/bugtrack/internal/validate"
)

var (
	projectAllowedKeys  = []string{"title", "description"}
	projectRequiredKeys = []string{"title"}

	projectSchema = validate.Schema{
		"title":       {Kind: validate.String},
		"description": {Kind: validate.NullableString},
	}
)

// ProjectHandler handles project CRUD endpoints.
type ProjectHandler struct {
	projects ProjectStore
	bugs     BugStore
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects ProjectStore, bugs BugStore) *ProjectHandler {
	return &ProjectHandler{projects: projects, bugs: bugs}
}

// projectWithBugs is the GET /project/:id payload: the project with its bug
// collection loaded.
type projectWithBugs struct {
	domain.Project
	Bugs []domain.Bug `json:"bugs"`
}

// List returns every project.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get returns one project together with its bugs.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := parseID(c, "projectId", "Unvalid id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	project, err := h.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}

	bugs, err := h.bugs.FindByProject(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, projectWithBugs{Project: *project, Bugs: bugs})
}

// Create validates the body and inserts a new project.
func (h *ProjectHandler) Create(c echo.Context) error {
	body := decodeBody(c)

	if validate.BodyIsEmpty(body) {
		return domain.BadRequest("Body missing.")
	}
	if !validate.KeysAllowed(body, projectAllowedKeys) || !validate.RequiredKeysPresent(body, projectRequiredKeys) {
		return domain.BadRequest("Some keys are invalid or missing.")
	}
	if !projectSchema.Check(body) {
		return domain.BadRequest("Some values are invalid.")
	}

	project := domain.Project{}
	project.Title, _ = stringValue(body, "title")
	project.Description, _ = stringPtrValue(body, "description")

	created, err := h.projects.Create(c.Request().Context(), project)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, created)
}

// Update validates the partial body, merges it onto the stored project, and
// saves it.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := parseID(c, "projectId", "Unvalid id")
	if err != nil {
		return err
	}

	body := decodeBody(c)

	if validate.BodyIsEmpty(body) {
		return domain.BadRequest("Body missing.")
	}
	if !validate.KeysAllowed(body, projectAllowedKeys) {
		return domain.BadRequest("Some keys are not allowed.")
	}
	if !projectSchema.Check(body) {
		return domain.BadRequest("Some values are invalid.")
	}

	ctx := c.Request().Context()

	project, err := h.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if title, ok := stringValue(body, "title"); ok {
		project.Title = title
	}
	if description, ok := stringPtrValue(body, "description"); ok {
		project.Description = description
	}

	updated, err := h.projects.Update(ctx, *project)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete removes a project and, through the store cascade, its bugs.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "projectId", "Unvalid id")
	if err != nil {
		return err
	}

	if err := h.projects.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}
