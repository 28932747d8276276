package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ludo/bugtrack/internal/domain"
)

// memStore backs the in-memory fakes used by the handler tests. It mirrors
// the relational store's behavior: assigned ids, unique user fields, and the
// project→bug delete cascade.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	projects map[int64]domain.Project
	bugs     map[int64]domain.Bug
	users    map[int64]domain.User
}

func newMemStore() *memStore {
	return &memStore{
		projects: map[int64]domain.Project{},
		bugs:     map[int64]domain.Bug{},
		users:    map[int64]domain.User{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// memProjects implements ProjectStore.
type memProjects struct{ s *memStore }

func (m memProjects) FindAll(_ context.Context) ([]domain.Project, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	projects := []domain.Project{}
	for _, p := range m.s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (m memProjects) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if p, ok := m.s.projects[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

func (m memProjects) Create(_ context.Context, project domain.Project) (*domain.Project, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	project.ID = m.s.id()
	m.s.projects[project.ID] = project
	return &project, nil
}

func (m memProjects) Update(_ context.Context, project domain.Project) (*domain.Project, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.projects[project.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	m.s.projects[project.ID] = project
	return &project, nil
}

func (m memProjects) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.s.projects, id)
	for bugID, bug := range m.s.bugs {
		if bug.ProjectID == id {
			delete(m.s.bugs, bugID)
		}
	}
	return nil
}

// memBugs implements BugStore.
type memBugs struct{ s *memStore }

func (m memBugs) FindByProject(_ context.Context, projectID int64) ([]domain.Bug, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	bugs := []domain.Bug{}
	for _, b := range m.s.bugs {
		if b.ProjectID == projectID {
			bugs = append(bugs, b)
		}
	}
	sort.Slice(bugs, func(i, j int) bool { return bugs[i].ID < bugs[j].ID })
	return bugs, nil
}

func (m memBugs) FindByID(_ context.Context, id int64) (*domain.Bug, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if b, ok := m.s.bugs[id]; ok {
		return &b, nil
	}
	return nil, domain.ErrNotFound
}

func (m memBugs) Create(_ context.Context, bug domain.Bug) (*domain.Bug, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	bug.ID = m.s.id()
	bug.StartDate = time.Now().UTC()
	m.s.bugs[bug.ID] = bug
	return &bug, nil
}

func (m memBugs) Update(_ context.Context, bug domain.Bug) (*domain.Bug, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.bugs[bug.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	m.s.bugs[bug.ID] = bug
	return &bug, nil
}

func (m memBugs) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.bugs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.s.bugs, id)
	return nil
}

// memUsers implements UserStore and service.UserStore.
type memUsers struct{ s *memStore }

func (m memUsers) FindAll(_ context.Context) ([]domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	users := []domain.User{}
	for _, u := range m.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (m memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m memUsers) Create(_ context.Context, user domain.User) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.uniqueViolation(user); err != nil {
		return nil, err
	}
	user.ID = m.s.id()
	m.s.users[user.ID] = user
	return &user, nil
}

func (m memUsers) Update(_ context.Context, user domain.User) (*domain.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[user.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	if err := m.uniqueViolation(user); err != nil {
		return nil, err
	}
	m.s.users[user.ID] = user
	return &user, nil
}

func (m memUsers) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.s.users, id)
	return nil
}

// uniqueViolation emulates the store's unique constraints. Callers hold the
// lock.
func (m memUsers) uniqueViolation(user domain.User) error {
	for _, u := range m.s.users {
		if u.ID == user.ID {
			continue
		}
		if u.Email == user.Email {
			return domain.Conflict("An account with the provided email already exists.")
		}
		if u.Username == user.Username {
			return domain.Conflict("Username is not available.")
		}
	}
	return nil
}
