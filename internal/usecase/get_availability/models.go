package get_availability

import (
	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// Request модель запроса доступности инструмента
type Request struct {
	InstrumentID int64            // ID инструмента
	Period       domain.DateRange // Диапазон дат (включительно)
}

// Response модель ответа с доступным количеством
type Response struct {
	InstrumentID      int64            // ID инструмента
	InstrumentName    string           // Название инструмента
	Period            domain.DateRange // Запрошенный диапазон
	TotalQuantity     int              // Общее количество в каталоге
	ReservedQuantity  int              // Занято заявками в статусах pending/approved/paid
	AvailableQuantity int              // Доступно прямо сейчас (floor 0)
}
