package blacklist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	blacklistRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/blacklist"
)

// Service сервис черного списка клиентов
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает новый экземпляр сервиса черного списка
func NewService(repo Repository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Add добавляет клиента в черный список. Повторное добавление обновляет причину
func (s *Service) Add(ctx context.Context, userID int64, reason string) (*domain.BlacklistEntry, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > domain.MaxBlacklistReason {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxBlacklistReason)
	}

	entry := &domain.BlacklistEntry{UserID: userID, Reason: reason}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		s.logger.Error("Add: user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: user=%d blacklisted, reason=%q", userID, reason)
	return entry, nil
}

// Remove убирает клиента из черного списка
func (s *Service) Remove(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, blacklistRepo.ErrEntryNotFound) {
			return ErrNotBlacklisted
		}
		s.logger.Error("Remove: user=%d: %v", userID, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: user=%d removed from blacklist", userID)
	return nil
}

// IsBlacklisted проверяет, находится ли клиент в черном списке
func (s *Service) IsBlacklisted(ctx context.Context, userID int64) (bool, error) {
	_, err := s.repo.Get(ctx, userID)
	if errors.Is(err, blacklistRepo.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("IsBlacklisted: user=%d: %v", userID, err)
		return false, fmt.Errorf("%w: IsBlacklisted - repository error: %v", ErrInternal, err)
	}
	return true, nil
}

// List возвращает черный список, новые записи первыми
func (s *Service) List(ctx context.Context) ([]*domain.BlacklistEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return entries, nil
}
