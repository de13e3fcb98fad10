package create_reservation_cart

import (
	"fmt"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if len(req.RequesterContact) > domain.MaxRequesterContactLength {
		return fmt.Errorf("%w: requester contact exceeds %d characters",
			ErrInvalidInput, domain.MaxRequesterContactLength)
	}

	if req.Kind != domain.KindRental && req.Kind != domain.KindBorrow {
		return fmt.Errorf("%w: unknown request kind %q", ErrInvalidInput, req.Kind)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: cart must contain at least one item", ErrInvalidInput)
	}

	if len(req.Items) > domain.MaxCartItems {
		return fmt.Errorf("%w: cart exceeds %d items", ErrInvalidInput, domain.MaxCartItems)
	}

	seenTokens := make(map[string]struct{})

	for i, item := range req.Items {
		if item.InstrumentID <= 0 {
			return fmt.Errorf("%w: item %d: instrumentID must be positive", ErrInvalidInput, i)
		}

		if item.Quantity <= 0 || item.Quantity > domain.MaxQuantityPerItem {
			return fmt.Errorf("%w: item %d: quantity must be between 1 and %d",
				ErrInvalidInput, i, domain.MaxQuantityPerItem)
		}

		if !item.Period.IsValid() {
			return fmt.Errorf("%w: item %d: start date must not be after end date", ErrInvalidPeriod, i)
		}

		if item.ClientToken != nil {
			token := *item.ClientToken
			if token == "" || len(token) > domain.MaxClientTokenLength {
				return fmt.Errorf("%w: item %d: client token must be between 1 and %d characters",
					ErrInvalidInput, i, domain.MaxClientTokenLength)
			}
			// Дубликат токена внутри одной корзины ловим до обращения к БД
			if _, ok := seenTokens[token]; ok {
				return fmt.Errorf("%w: item %d: token %q repeats within the cart",
					ErrDuplicateClientToken, i, token)
			}
			seenTokens[token] = struct{}{}
		}
	}

	return nil
}
