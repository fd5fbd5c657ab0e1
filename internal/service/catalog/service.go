package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
)

const defaultServiceDuration = 60

// Service сервис каталога: залы, мастера, услуги
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo Repository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListHalls возвращает все залы
func (s *Service) ListHalls(ctx context.Context) ([]*domain.Hall, error) {
	halls, err := s.repo.ListHalls(ctx)
	if err != nil {
		s.logger.Error("ListHalls: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHalls - repository error: %v", ErrInternal, err)
	}
	return halls, nil
}

// RenameHall переименовывает зал
func (s *Service) RenameHall(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > domain.MaxNameLength {
		return fmt.Errorf("%w: hall name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if err := s.repo.RenameHall(ctx, id, name); err != nil {
		return s.mapError("RenameHall", err)
	}

	s.logger.Info("RenameHall: hall id=%d renamed to %q", id, name)
	return nil
}

// ListMasters возвращает активных мастеров зала
func (s *Service) ListMasters(ctx context.Context, hallID int64) ([]*domain.Master, error) {
	if _, err := s.repo.GetHall(ctx, hallID); err != nil {
		return nil, s.mapError("ListMasters", err)
	}

	masters, err := s.repo.ListActiveMasters(ctx, &hallID)
	if err != nil {
		return nil, s.mapError("ListMasters", err)
	}
	return masters, nil
}

// AddMaster добавляет мастера в зал
func (s *Service) AddMaster(ctx context.Context, name string, hallID int64) (*domain.Master, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: master name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if _, err := s.repo.GetHall(ctx, hallID); err != nil {
		return nil, s.mapError("AddMaster", err)
	}

	master, err := s.repo.CreateMaster(ctx, &domain.Master{Name: name, HallID: hallID, IsActive: true})
	if err != nil {
		return nil, s.mapError("AddMaster", err)
	}

	s.logger.Info("AddMaster: master id=%d %q added to hall id=%d", master.ID, master.Name, hallID)
	return master, nil
}

// DeactivateMaster выводит мастера из расписания
// Прошлые записи не меняются, новые слоты для мастера не создаются
func (s *Service) DeactivateMaster(ctx context.Context, id int64) error {
	if err := s.repo.DeactivateMaster(ctx, id); err != nil {
		return s.mapError("DeactivateMaster", err)
	}
	s.logger.Info("DeactivateMaster: master id=%d deactivated", id)
	return nil
}

// ListServices возвращает услуги зала
func (s *Service) ListServices(ctx context.Context, hallID int64) ([]*domain.Service, error) {
	if _, err := s.repo.GetHall(ctx, hallID); err != nil {
		return nil, s.mapError("ListServices", err)
	}

	services, err := s.repo.ListServicesByHall(ctx, hallID)
	if err != nil {
		return nil, s.mapError("ListServices", err)
	}
	return services, nil
}

// AddService добавляет услугу в зал
func (s *Service) AddService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	service.Name = strings.TrimSpace(service.Name)
	if service.Name == "" || len([]rune(service.Name)) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: service name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if service.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if service.DurationMinutes <= 0 {
		service.DurationMinutes = defaultServiceDuration
	}
	if _, err := s.repo.GetHall(ctx, service.HallID); err != nil {
		return nil, s.mapError("AddService", err)
	}

	created, err := s.repo.CreateService(ctx, service)
	if err != nil {
		return nil, s.mapError("AddService", err)
	}

	s.logger.Info("AddService: service id=%d %q added to hall id=%d", created.ID, created.Name, created.HallID)
	return created, nil
}

// UpdateServicePrice меняет цену услуги
// Отчеты считаются по текущей цене
func (s *Service) UpdateServicePrice(ctx context.Context, id int64, price int) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if err := s.repo.UpdateServicePrice(ctx, id, price); err != nil {
		return s.mapError("UpdateServicePrice", err)
	}
	s.logger.Info("UpdateServicePrice: service id=%d price=%d", id, price)
	return nil
}

func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrHallNotFound):
		return ErrHallNotFound
	case errors.Is(err, catalogRepo.ErrMasterNotFound):
		return ErrMasterNotFound
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrDuplicateName):
		return ErrDuplicateName
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
