package transition_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("transition_request: request not found")

	// ErrInvalidTransition возвращается, когда машина состояний запрещает переход
	ErrInvalidTransition = errors.New("transition_request: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_request: internal error")
)
