package catalog

import "errors"

var (
	// ErrInstrumentNotFound возвращается, когда инструмент не найден
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
