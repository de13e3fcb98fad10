package catalog

import (
	"context"
	"errors"
	"fmt"

	instrumentRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/instrument"
	"github.com/ensembleops/ERS-ReservationService/internal/service/catalog/models"
)

// Service сервис чтения каталога инструментов
// Каталог принадлежит инвентарной администрации, здесь только чтение
type Service struct {
	instrumentRepo InstrumentRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(instrumentRepo InstrumentRepository, logger Logger) *Service {
	return &Service{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

// GetByID получает инструмент по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.InstrumentResponse, error) {
	s.logger.Info("GetByID: fetching instrument id=%d", id)

	instrument, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, instrumentRepo.ErrInstrumentNotFound) {
			s.logger.Warn("GetByID: instrument id=%d not found", id)
			return nil, ErrInstrumentNotFound
		}
		s.logger.Error("GetByID: repository error for instrument id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInstrument(instrument), nil
}

// List получает все инструменты каталога
func (s *Service) List(ctx context.Context) (*models.InstrumentListResponse, error) {
	s.logger.Info("List: fetching instrument catalog")

	instruments, err := s.instrumentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d instruments", len(instruments))
	return models.FromDomainInstrumentList(instruments), nil
}
