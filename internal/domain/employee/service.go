package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	GetMe(ctx context.Context) (Employee, error)
	List(ctx context.Context, req ListEmployeeRequest) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	Remove(ctx context.Context, id string) error
	UploadProfileImage(ctx context.Context, id string, file io.Reader, filename string) (Employee, error)
}
