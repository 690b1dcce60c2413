package cart

import (
	"time"

	cartdto "github.com/panoport/panoport-backend/api/controllers/cart/dto"
	cartsvc "github.com/panoport/panoport-backend/internal/cart"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

func toQuoteInput(payload cartdto.QuoteCartRequest) (cartsvc.QuoteInput, error) {
	items := make([]cartsvc.QuoteItemInput, len(payload.Items))
	for i, item := range payload.Items {
		start, err := parseDate(item.StartDate)
		if err != nil {
			return cartsvc.QuoteInput{}, err
		}
		end, err := parseDate(item.EndDate)
		if err != nil {
			return cartsvc.QuoteInput{}, err
		}
		items[i] = cartsvc.QuoteItemInput{
			PanelID:     item.PanelID,
			StartDate:   start,
			EndDate:     end,
			DoubleSided: item.DoubleSided,
		}
	}
	return cartsvc.QuoteInput{Items: items}, nil
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "dates must use the YYYY-MM-DD format")
	}
	return &value, nil
}
