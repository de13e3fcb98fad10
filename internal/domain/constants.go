package domain

// Business validation constants
const (
	MaxCartItems             = 20
	MaxQuantityPerItem       = 50
	MaxRequesterContactLength = 255
	MaxBookingTitleLength    = 200
	MaxClientTokenLength     = 64
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CapacityConsumingStatuses список статусов, уменьшающих доступное количество
// инструмента. Используется при подсчёте занятости в ledger-запросах.
var CapacityConsumingStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusPaid,
}

// TerminalRequestStatuses список терминальных статусов заявок
// Терминальные заявки сохраняются для аудита, но не влияют на доступность
var TerminalRequestStatuses = []RequestStatus{
	RequestStatusRejected,
	RequestStatusReturned,
}
