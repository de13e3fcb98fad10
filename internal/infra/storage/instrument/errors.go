package instrument

import "errors"

var (
	// ErrInstrumentNotFound возвращается, когда инструмент не найден в каталоге
	ErrInstrumentNotFound = errors.New("instrument.repository: instrument not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("instrument.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("instrument.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("instrument.repository: failed to scan row")
)
