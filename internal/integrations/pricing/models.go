package pricing

// RentalFeeRequest запрос расчета стоимости аренды инструмента
type RentalFeeRequest struct {
	InstrumentID int64 `json:"instrument_id"`
	Quantity     int   `json:"quantity"`
	Days         int   `json:"days"`
}

// BookingEstimateRequest запрос оценки стоимости выступления
type BookingEstimateRequest struct {
	EventDate string `json:"event_date"` // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// Quote ответ прайсинг-сервиса
type Quote struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ErrorResponse модель ошибки от прайсинг-сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
