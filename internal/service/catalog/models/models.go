package models

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// InstrumentResponse ответ с данными инструмента каталога
type InstrumentResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	TotalQuantity   int     `json:"totalQuantity"`
	PricePerDay     float64 `json:"pricePerDay"`
	ConditionStatus string  `json:"conditionStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InstrumentListResponse ответ со списком инструментов
type InstrumentListResponse struct {
	Instruments []InstrumentResponse `json:"instruments"`
}

// FromDomainInstrument конвертирует domain модель в DTO
func FromDomainInstrument(i *domain.Instrument) *InstrumentResponse {
	if i == nil {
		return nil
	}

	return &InstrumentResponse{
		ID:              i.ID,
		Name:            i.Name,
		TotalQuantity:   i.TotalQuantity,
		PricePerDay:     i.PricePerDay,
		ConditionStatus: string(i.ConditionStatus),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// FromDomainInstrumentList конвертирует список domain моделей в DTO
func FromDomainInstrumentList(instruments []*domain.Instrument) *InstrumentListResponse {
	if instruments == nil {
		return &InstrumentListResponse{
			Instruments: []InstrumentResponse{},
		}
	}

	resp := &InstrumentListResponse{
		Instruments: make([]InstrumentResponse, len(instruments)),
	}

	for i, instrument := range instruments {
		if instrumentResp := FromDomainInstrument(instrument); instrumentResp != nil {
			resp.Instruments[i] = *instrumentResp
		}
	}

	return resp
}
