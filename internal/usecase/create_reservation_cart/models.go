package create_reservation_cart

import (
	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// Item одна позиция корзины: инструмент, количество и диапазон дат
type Item struct {
	InstrumentID int64
	Quantity     int
	Period       domain.DateRange
	// ClientToken опциональный клиентский токен для сверки оптимистичных
	// клиентских идентификаторов с серверными ID после ответа
	ClientToken *string
}

// Request модель запроса на создание корзины заявок
type Request struct {
	RequesterID      int64
	RequesterContact string
	Kind             domain.RequestKind
	Items            []Item
}

// Response модель ответа: созданные заявки в порядке позиций корзины
type Response struct {
	Requests []*domain.ReservationRequest
	// TokenMap сопоставляет клиентские токены серверным ID созданных заявок
	TokenMap map[string]int64
	// TotalFee суммарная информационная стоимость корзины
	TotalFee float64
}
