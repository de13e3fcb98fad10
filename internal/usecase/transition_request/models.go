package transition_request

import (
	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// Request модель запроса на перевод заявки в новый статус
type Request struct {
	RequestID    int64
	TargetStatus domain.RequestStatus
}

// Response модель ответа с заявкой после перехода
type Response struct {
	Request *domain.ReservationRequest
}
