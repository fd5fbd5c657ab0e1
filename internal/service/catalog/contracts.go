package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Repository интерфейс репозитория каталога
type Repository interface {
	ListHalls(ctx context.Context) ([]*domain.Hall, error)
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
	RenameHall(ctx context.Context, id int64, name string) error

	ListActiveMasters(ctx context.Context, hallID *int64) ([]*domain.Master, error)
	GetMaster(ctx context.Context, id int64) (*domain.Master, error)
	CreateMaster(ctx context.Context, master *domain.Master) (*domain.Master, error)
	DeactivateMaster(ctx context.Context, id int64) error

	ListServicesByHall(ctx context.Context, hallID int64) ([]*domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateServicePrice(ctx context.Context, id int64, price int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
