package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ludo/bugtrack/internal/domain"
)

const bugColumns = `id, project_id, title, description, priority, status, start_date, due_date, end_date`

// BugRepository handles bug data access operations.
type BugRepository struct {
	db *sqlx.DB
}

// NewBugRepository creates a new BugRepository.
func NewBugRepository(db *sqlx.DB) *BugRepository {
	return &BugRepository{db: db}
}

// FindByProject retrieves every bug belonging to the given project.
func (r *BugRepository) FindByProject(ctx context.Context, projectID int64) ([]domain.Bug, error) {
	bugs := []domain.Bug{}
	err := r.db.SelectContext(ctx, &bugs,
		`SELECT `+bugColumns+` FROM bugs WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("find bugs by project %d: %w", projectID, err)
	}
	return bugs, nil
}

// FindByID retrieves a bug by its ID.
func (r *BugRepository) FindByID(ctx context.Context, id int64) (*domain.Bug, error) {
	var bug domain.Bug
	err := r.db.GetContext(ctx, &bug,
		`SELECT `+bugColumns+` FROM bugs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find bug by id %d: %w", id, err)
	}
	return &bug, nil
}

// Create inserts a new bug and returns it with its assigned ID and
// store-assigned start date.
func (r *BugRepository) Create(ctx context.Context, bug domain.Bug) (*domain.Bug, error) {
	var created domain.Bug
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO bugs (project_id, title, description, priority, status, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+bugColumns,
		bug.ProjectID, bug.Title, bug.Description, bug.Priority, bug.Status, bug.DueDate,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("create bug: %w", err)
	}
	return &created, nil
}

// Update saves the merged bug row and returns it. The owning project and the
// start date never change.
func (r *BugRepository) Update(ctx context.Context, bug domain.Bug) (*domain.Bug, error) {
	var updated domain.Bug
	err := r.db.QueryRowxContext(ctx,
		`UPDATE bugs
		 SET title = $2, description = $3, priority = $4, status = $5, due_date = $6, end_date = $7
		 WHERE id = $1
		 RETURNING `+bugColumns,
		bug.ID, bug.Title, bug.Description, bug.Priority, bug.Status, bug.DueDate, bug.EndDate,
	).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update bug %d: %w", bug.ID, err)
	}
	return &updated, nil
}

// Delete removes a bug.
func (r *BugRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bugs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bug %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bug %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
