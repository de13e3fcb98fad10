package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	requestRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/request"
	"github.com/ensembleops/ERS-ReservationService/internal/service/requests/models"
)

// Service сервис чтения заявок на аренду/выдачу инструментов
type Service struct {
	requestRepo RequestRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(requestRepo RequestRepository, logger Logger) *Service {
	return &Service{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// GetByID получает заявку по ID
// Пользователь может видеть только свою заявку
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.RequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for user=%d", id, userID)

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if request.RequesterID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched request id=%d", id)
	return models.FromDomainRequest(request), nil
}

// GetUserRequests получает историю заявок пользователя
// Опционально фильтрует по статусу и инструменту
func (s *Service) GetUserRequests(ctx context.Context, req *models.GetUserRequestsRequest) (*models.RequestListResponse, error) {
	s.logger.Info("GetUserRequests: fetching requests for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.RequestsFilter{
		RequesterID:  &req.UserID,
		InstrumentID: req.InstrumentID,
	}

	if req.Status != nil {
		status, err := models.ToDomainRequestStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserRequests: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	requests, err := s.requestRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserRequests: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRequests: successfully fetched %d requests for user=%d", len(requests), req.UserID)
	return models.FromDomainRequestList(requests), nil
}
