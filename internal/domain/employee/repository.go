package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByKey looks an employee up by uid first, then by id.
	GetByKey(ctx context.Context, key string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	UpdateProfileImage(ctx context.Context, id string, path *string) error
	SoftDelete(ctx context.Context, id string) error
	Upsert(ctx context.Context, e Employee) error
	Count(ctx context.Context) (int, error)
}

type ListFilter struct {
	IncludeRemoved bool
	Search         string
}
