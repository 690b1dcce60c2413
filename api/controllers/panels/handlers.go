package panels

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/panoport/panoport-backend/api/responses"
	"github.com/panoport/panoport-backend/api/validators"
	panelsvc "github.com/panoport/panoport-backend/internal/panels"
	"github.com/panoport/panoport-backend/pkg/enums"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
	"github.com/panoport/panoport-backend/pkg/logger"
	"github.com/panoport/panoport-backend/pkg/pagination"
)

// maxSearchQueryLen caps the free-text catalog search term before it reaches
// the LIKE filter.
const maxSearchQueryLen = 255

// PanelList exposes the active panel catalog with filters and cursor
// pagination.
func PanelList(svc panelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := panelsvc.ListFilters{
			City:      validators.ParseQueryString(r, "city"),
			OwnerName: validators.ParseQueryString(r, "owner"),
		}
		if q := validators.ParseQueryString(r, "q"); q != nil {
			filters.Query = validators.SanitizeString(*q, maxSearchQueryLen)
		}
		if rawType := validators.ParseQueryString(r, "type"); rawType != nil {
			typed, parseErr := enums.ParsePanelType(*rawType)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid panel type").WithDetails(map[string]any{"field": "type"}))
				return
			}
			filters.Type = &typed
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}

		result, err := svc.ListPanels(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := panelListResponse{
			Panels:     make([]panelResponse, 0, len(result.Panels)),
			NextCursor: result.NextCursor,
		}
		for i := range result.Panels {
			payload.Panels = append(payload.Panels, newPanelResponse(&result.Panels[i], false))
		}

		responses.WriteSuccess(w, payload)
	}
}

// PanelGet returns one panel with its blocked date ranges.
func PanelGet(svc panelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		panel, err := svc.GetPanel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPanelResponse(panel, true))
	}
}

// PanelAvailability checks a rental window against the panel's blocked days
// and minimum rental duration. A blocked window is reported as a payload, not
// an error, so the catalog UI can render it inline.
func PanelAvailability(svc panelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, err := validators.ParseQueryDate(r, "start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryDate(r, "end")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CheckAvailability(r.Context(), id, start, end); err != nil {
			typed := pkgerrors.As(err)
			if typed != nil && typed.Code() == pkgerrors.CodeUnavailable {
				responses.WriteSuccess(w, map[string]any{
					"available": false,
					"reason":    typed.Message(),
					"details":   typed.Details(),
				})
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"available": true})
	}
}

type blockedRangeRequest struct {
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=255"`
}

// BlockedRangeAdd registers a blocked date interval for a panel.
func BlockedRangeAdd(svc panelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload blockedRangeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, _ := time.Parse(dateLayout, payload.StartDate)
		end, _ := time.Parse(dateLayout, payload.EndDate)

		blocked, err := svc.AddBlockedRange(r.Context(), id, start, end, payload.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newBlockedRangeResponse(blocked))
	}
}

// BlockedRangeList returns a panel's blocked intervals ordered by start date.
func BlockedRangeList(svc panelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ranges, err := svc.ListBlockedRanges(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"blocked_ranges": newBlockedRangeResponses(ranges)})
	}
}

// BlockedRangeRemove deletes one blocked interval from a panel.
func BlockedRangeRemove(svc panelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "panel service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rangeID, err := validators.ParsePathUUID(chi.URLParam(r, "rangeID"), "rangeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveBlockedRange(r.Context(), id, rangeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
