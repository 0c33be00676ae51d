package guest

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*Guest, error)
	FindByID(ctx context.Context, id int) (*Guest, error)
	FindByEmail(ctx context.Context, email string) (*Guest, error)
	FindByName(ctx context.Context, name string) (*Guest, error)
	List(ctx context.Context) ([]Guest, error)
	UpdateName(ctx context.Context, id int, name string) (*Guest, error)
	Delete(ctx context.Context, id int) error
	EmailExists(ctx context.Context, email string) (bool, error)
}
