package get_availability

import "errors"

var (
	// ErrInstrumentNotFound возвращается, когда инструмент не найден в каталоге
	ErrInstrumentNotFound = errors.New("get_availability: instrument not found")

	// ErrInvalidPeriod возвращается при некорректном диапазоне дат
	ErrInvalidPeriod = errors.New("get_availability: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
