package transition_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrInvalidTransition возвращается, когда машина состояний запрещает переход
	ErrInvalidTransition = errors.New("transition_booking: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)

// ConflictError возвращается при попытке одобрить бронирование, чье окно
// пересекается с уже одобренным. Содержит все мешающие бронирования,
// кандидат остается в статусе pending
type ConflictError struct {
	Conflicts []*domain.Booking
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, b := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("booking %d (%s %s-%s)",
			b.ID, b.EventDate.Format(domain.DateFormat), b.StartTime, b.EndTime))
	}
	return "transition_booking: window conflicts with approved bookings: " + strings.Join(parts, "; ")
}
