// Package handler implements the HTTP controllers, the auth middleware, and
// the single error-to-response boundary.
package handler

import (
	"context"

	"github.com/ludo/bugtrack/internal/domain"
)

// ProjectStore defines the project data access interface consumed by handlers.
type ProjectStore interface {
	FindAll(ctx context.Context) ([]domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, project domain.Project) (*domain.Project, error)
	Update(ctx context.Context, project domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

// BugStore defines the bug data access interface consumed by handlers.
type BugStore interface {
	FindByProject(ctx context.Context, projectID int64) ([]domain.Bug, error)
	FindByID(ctx context.Context, id int64) (*domain.Bug, error)
	Create(ctx context.Context, bug domain.Bug) (*domain.Bug, error)
	Update(ctx context.Context, bug domain.Bug) (*domain.Bug, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore defines the user data access interface consumed by handlers.
type UserStore interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, user domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
