package create_reservation_cart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation_cart: invalid input data")

	// ErrInvalidPeriod возвращается при некорректном диапазоне дат позиции
	ErrInvalidPeriod = errors.New("create_reservation_cart: invalid date range")

	// ErrInstrumentNotFound возвращается, когда инструмент позиции не найден
	ErrInstrumentNotFound = errors.New("create_reservation_cart: instrument not found")

	// ErrDuplicateClientToken возвращается при повторном использовании клиентского токена
	ErrDuplicateClientToken = errors.New("create_reservation_cart: duplicate client token")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation_cart: internal error")
)

// ItemDeficit описывает нехватку по одной позиции корзины
type ItemDeficit struct {
	InstrumentID   int64  `json:"instrument_id"`
	InstrumentName string `json:"instrument_name"`
	Requested      int    `json:"requested"`
	Available      int    `json:"available"`
	Deficit        int    `json:"deficit"`
}

// InsufficientAvailabilityError возвращается, когда корзина отклонена целиком:
// хотя бы по одной позиции не хватило доступного количества.
// Содержит дефициты по всем проблемным позициям, а не только по первой
type InsufficientAvailabilityError struct {
	Items []ItemDeficit
}

func (e *InsufficientAvailabilityError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		parts = append(parts, fmt.Sprintf("instrument %d (%s): requested %d, available %d",
			item.InstrumentID, item.InstrumentName, item.Requested, item.Available))
	}
	return "create_reservation_cart: insufficient availability: " + strings.Join(parts, "; ")
}
