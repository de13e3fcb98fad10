package pricing

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pricing client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("pricing client: invalid response")

	// ErrServiceDegraded возвращается при недоступности прайсинг-сервиса
	// Стоимость информационная, поэтому вызывающая сторона логирует ошибку
	// и продолжает с нулевым значением
	ErrServiceDegraded = errors.New("pricing service unavailable: graceful degradation applied")
)
