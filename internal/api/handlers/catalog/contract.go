package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type CatalogService interface {
	ListHalls(ctx context.Context) ([]*domain.Hall, error)
	RenameHall(ctx context.Context, id int64, name string) error
	ListMasters(ctx context.Context, hallID int64) ([]*domain.Master, error)
	AddMaster(ctx context.Context, name string, hallID int64) (*domain.Master, error)
	DeactivateMaster(ctx context.Context, id int64) error
	ListServices(ctx context.Context, hallID int64) ([]*domain.Service, error)
	AddService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateServicePrice(ctx context.Context, id int64, price int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
