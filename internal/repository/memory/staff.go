package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/presenz/presenz-backend-go/internal/domain/employee"
)

type staffRepository struct{ s *Store }

func (s *Store) Staff() employee.EmployeeRepository {
	return &staffRepository{s: s}
}

func cloneEmployee(e employee.Employee) employee.Employee {
	e.UnpaidHolidays = append([]string{}, e.UnpaidHolidays...)
	return e
}

func (r *staffRepository) uidTaken(uid *string, exceptID string) bool {
	if uid == nil || *uid == "" {
		return false
	}
	for id, e := range r.s.staff {
		if id != exceptID && e.UID != nil && *e.UID == *uid {
			return true
		}
	}
	return false
}

func (r *staffRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.ID == "" {
		e.ID = newID()
	}
	if r.uidTaken(e.UID, e.ID) {
		return employee.Employee{}, employee.ErrUIDExists
	}
	if e.Status == "" {
		e.Status = employee.StatusActive
	}
	now := r.s.Now()
	if e.JoinedAt.IsZero() {
		e.JoinedAt = now
	}
	e.CreatedAt, e.UpdatedAt = now, now
	e = cloneEmployee(e)
	r.s.staff[e.ID] = e
	return cloneEmployee(e), nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.staff[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *staffRepository) GetByKey(ctx context.Context, key string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.staff {
		if e.UID != nil && *e.UID == key {
			return cloneEmployee(e), nil
		}
	}
	if e, ok := r.s.staff[key]; ok && (e.UID == nil || *e.UID == "") {
		return cloneEmployee(e), nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.staff {
		if e.IsActive() && strings.EqualFold(e.Email, email) {
			return cloneEmployee(e), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *staffRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(filter.Search)
	list := []employee.Employee{}
	for _, e := range r.s.staff {
		if !filter.IncludeRemoved && !e.IsActive() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Name), search) && !strings.Contains(strings.ToLower(e.Email), search) {
			continue
		}
		list = append(list, cloneEmployee(e))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *staffRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.staff[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if r.uidTaken(e.UID, e.ID) {
		return employee.Employee{}, employee.ErrUIDExists
	}
	e.CreatedAt = existing.CreatedAt
	if e.JoinedAt.IsZero() {
		e.JoinedAt = existing.JoinedAt
	}
	e.UpdatedAt = r.s.Now()
	e = cloneEmployee(e)
	r.s.staff[e.ID] = e
	return cloneEmployee(e), nil
}

func (r *staffRepository) UpdateProfileImage(ctx context.Context, id string, path *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.staff[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.ProfileImage = path
	e.UpdatedAt = r.s.Now()
	r.s.staff[id] = e
	return nil
}

func (r *staffRepository) SoftDelete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.staff[id]
	if !ok || !e.IsActive() {
		return employee.ErrEmployeeNotFound
	}
	e.Status = employee.StatusRemoved
	e.UpdatedAt = r.s.Now()
	r.s.staff[id] = e
	return nil
}

func (r *staffRepository) Upsert(ctx context.Context, e employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.uidTaken(e.UID, e.ID) {
		return employee.ErrUIDExists
	}
	if e.Status == "" {
		e.Status = employee.StatusActive
	}
	now := r.s.Now()
	if existing, ok := r.s.staff[e.ID]; ok {
		e.CreatedAt = existing.CreatedAt
	} else if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.JoinedAt.IsZero() {
		e.JoinedAt = now
	}
	e.UpdatedAt = now
	r.s.staff[e.ID] = cloneEmployee(e)
	return nil
}

func (r *staffRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.staff), nil
}
