// Package repository implements the entity stores over Postgres via sqlx.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ludo/bugtrack/internal/domain"
)

// ProjectRepository handles project data access operations.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindAll retrieves every project.
func (r *ProjectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	err := r.db.SelectContext(ctx, &projects,
		`SELECT id, title, description FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("find all projects: %w", err)
	}
	return projects, nil
}

// FindByID retrieves a project by its ID.
func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	err := r.db.GetContext(ctx, &project,
		`SELECT id, title, description FROM projects WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project by id %d: %w", id, err)
	}
	return &project, nil
}

// Create inserts a new project and returns it with its assigned ID.
func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (*domain.Project, error) {
	var created domain.Project
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO projects (title, description)
		 VALUES ($1, $2)
		 RETURNING id, title, description`,
		project.Title, project.Description,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &created, nil
}

// Update saves the merged project row and returns it.
func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (*domain.Project, error) {
	var updated domain.Project
	err := r.db.QueryRowxContext(ctx,
		`UPDATE projects SET title = $2, description = $3
		 WHERE id = $1
		 RETURNING id, title, description`,
		project.ID, project.Title, project.Description,
	).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project %d: %w", project.ID, err)
	}
	return &updated, nil
}

// Delete removes a project. Its bugs go with it via the FK cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
