package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ludo/bugtrack/internal/service"
)

// RegisterRoutes mounts the API route table under /api. Mutating project and
// bug endpoints require a bearer token; user registration and login do not,
// so an account can be created and logged into from nothing.
func RegisterRoutes(e *echo.Echo, projects *ProjectHandler, bugs *BugHandler, users *UserHandler, auth *service.AuthService) {
	api := e.Group("/api")
	loggedIn := Auth(auth)

	api.GET("/project", projects.List)
	api.GET("/project/:projectId", projects.Get)
	api.POST("/project", projects.Create, loggedIn)
	api.PUT("/project/:projectId", projects.Update, loggedIn)
	api.DELETE("/project/:projectId", projects.Delete, loggedIn)

	api.GET("/project/:projectId/bug", bugs.ListByProject)
	api.GET("/bug/:bugId", bugs.Get)
	api.POST("/project/:projectId/bug", bugs.Create, loggedIn)
	api.PUT("/bug/:bugId", bugs.Update, loggedIn)
	api.DELETE("/bug/:bugId", bugs.Delete, loggedIn)

	api.POST("/user", users.Create)
	api.POST("/user/login", users.Login)
	api.GET("/user", users.List)
	api.GET("/user/:id", users.Get)
	api.PUT("/user/:id", users.Update, loggedIn)
	api.DELETE("/user/:id", users.Delete, loggedIn)
}
