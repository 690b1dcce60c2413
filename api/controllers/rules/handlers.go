package rules

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/panoport/panoport-backend/api/responses"
	"github.com/panoport/panoport-backend/api/validators"
	rulesvc "github.com/panoport/panoport-backend/internal/rules"
	"github.com/panoport/panoport-backend/pkg/enums"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
	"github.com/panoport/panoport-backend/pkg/logger"
)

// RuleList returns every configured discount rule, active or not.
func RuleList(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		rows, err := svc.ListRules(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]ruleResponse, 0, len(rows))
		for i := range rows {
			payload = append(payload, newRuleResponse(&rows[i]))
		}

		responses.WriteSuccess(w, map[string]any{"rules": payload})
	}
}

// RuleGet returns one discount rule by id.
func RuleGet(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.GetRule(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newRuleResponse(rule))
	}
}

// RuleCreate registers a new discount rule.
func RuleCreate(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		var payload ruleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.CreateRule(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newRuleResponse(rule))
	}
}

// RuleUpdate replaces a discount rule's definition.
func RuleUpdate(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ruleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.UpdateRule(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newRuleResponse(rule))
	}
}

// RuleDelete removes a discount rule.
func RuleDelete(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRule(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parsePanelTypeFilter(raw *string) (*enums.PanelType, error) {
	if raw == nil {
		return nil, nil
	}
	typed, err := enums.ParsePanelType(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid panel type").WithDetails(map[string]any{"field": "panel_type"})
	}
	return &typed, nil
}
