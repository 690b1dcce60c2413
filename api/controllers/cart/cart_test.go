package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartdto "github.com/panoport/panoport-backend/api/controllers/cart/dto"
	"github.com/panoport/panoport-backend/api/middleware"
	cartsvc "github.com/panoport/panoport-backend/internal/cart"
	"github.com/panoport/panoport-backend/internal/pricing"
	"github.com/panoport/panoport-backend/pkg/db/models"
	"github.com/panoport/panoport-backend/pkg/enums"
	pkgerrors "github.com/panoport/panoport-backend/pkg/errors"
)

type stubCartService struct {
	record      *models.CartRecord
	suggestions []pricing.Suggestion
	validation  *cartsvc.ValidationResult
	err         error

	lastSessionID  string
	lastQuoteInput cartsvc.QuoteInput
	cleared        bool
}

func (s *stubCartService) QuoteCart(ctx context.Context, sessionID string, input cartsvc.QuoteInput) (*cartsvc.QuoteResult, error) {
	s.lastSessionID = sessionID
	s.lastQuoteInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &cartsvc.QuoteResult{Record: s.record, Suggestions: s.suggestions}, nil
}

func (s *stubCartService) ValidateAndPrice(ctx context.Context, input cartsvc.QuoteInput) (*cartsvc.ValidationResult, error) {
	s.lastQuoteInput = input
	return s.validation, s.err
}

func (s *stubCartService) GetActiveCart(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	s.lastSessionID = sessionID
	return s.record, s.err
}

func (s *stubCartService) ClearCart(ctx context.Context, sessionID string) error {
	s.lastSessionID = sessionID
	s.cleared = true
	return s.err
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func TestCartQuoteSuccess(t *testing.T) {
	panelID := uuid.New()
	record := &models.CartRecord{
		ID:        uuid.New(),
		SessionID: "sess-1",
		Status:    enums.CartStatusActive,
		Currency:  "TRY",
		Subtotal:  decimal.NewFromInt(4000),
		Total:     decimal.NewFromInt(4000),
	}
	service := &stubCartService{record: record, suggestions: []pricing.Suggestion{{
		PanelType:        enums.PanelTypeCLP,
		RuleID:           uuid.New(),
		RuleName:         "CLP 20+",
		NeededCount:      18,
		PotentialSavings: decimal.NewFromInt(10000),
	}}}
	handler := CartQuote(service, nil)

	body := fmt.Sprintf(`{
		"items": [{
			"panel_id": "%s",
			"start_date": "2025-03-01",
			"end_date": "2025-03-14"
		}]
	}`, panelID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", strings.NewReader(body))
	req = withSession(req, "sess-1")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartdto.CartQuote `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != record.ID {
		t.Fatalf("unexpected cart id: %s", envelope.Data.ID)
	}
	if len(envelope.Data.Suggestions) != 1 || envelope.Data.Suggestions[0].NeededCount != 18 {
		t.Fatalf("unexpected suggestions: %+v", envelope.Data.Suggestions)
	}

	if service.lastSessionID != "sess-1" {
		t.Fatalf("expected session forwarded, got %q", service.lastSessionID)
	}
	if len(service.lastQuoteInput.Items) != 1 {
		t.Fatalf("expected one quote item, got %d", len(service.lastQuoteInput.Items))
	}
	item := service.lastQuoteInput.Items[0]
	if item.PanelID != panelID || item.StartDate == nil || item.StartDate.Day() != 1 {
		t.Fatalf("unexpected quote item: %+v", item)
	}
}

func TestCartQuoteRejectsEmptyItems(t *testing.T) {
	handler := CartQuote(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", strings.NewReader(`{"items": []}`))
	req = withSession(req, "sess-1")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartQuoteRejectsMalformedDate(t *testing.T) {
	handler := CartQuote(&stubCartService{}, nil)

	body := fmt.Sprintf(`{"items": [{"panel_id": "%s", "start_date": "01/03/2025", "end_date": "2025-03-14"}]}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", strings.NewReader(body))
	req = withSession(req, "sess-1")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartQuoteMissingSession(t *testing.T) {
	handler := CartQuote(&stubCartService{}, nil)

	body := fmt.Sprintf(`{"items": [{"panel_id": "%s"}]}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", strings.NewReader(body))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartQuoteSurfacesUnavailablePanel(t *testing.T) {
	service := &stubCartService{err: pkgerrors.New(pkgerrors.CodeUnavailable, "panel is blocked for the requested dates")}
	handler := CartQuote(service, nil)

	body := fmt.Sprintf(`{"items": [{"panel_id": "%s"}]}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/quote", strings.NewReader(body))
	req = withSession(req, "sess-1")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCartValidateReportsPerItemOutcomes(t *testing.T) {
	okID := uuid.New()
	badID := uuid.New()
	service := &stubCartService{validation: &cartsvc.ValidationResult{
		Items: []cartsvc.ItemCheck{
			{PanelID: okID, Status: enums.CartItemStatusOK},
			{PanelID: badID, Status: enums.CartItemStatusNotAvailable, Reason: "panel is not available"},
		},
		Totals: pricing.Totals{
			Subtotal: decimal.NewFromInt(2000),
			Total:    decimal.NewFromInt(2000),
		},
	}}
	handler := CartValidate(service, nil)

	body := fmt.Sprintf(`{"items": [{"panel_id": "%s"}, {"panel_id": "%s"}]}`, okID, badID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/validate", strings.NewReader(body))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartdto.ValidationOutcome `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 2 {
		t.Fatalf("expected 2 item checks, got %d", len(envelope.Data.Items))
	}
	if envelope.Data.Items[1].Status != enums.CartItemStatusNotAvailable {
		t.Fatalf("unexpected status: %s", envelope.Data.Items[1].Status)
	}
	if !envelope.Data.Totals.Subtotal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected subtotal: %s", envelope.Data.Totals.Subtotal)
	}
}

func TestCartFetchSuccess(t *testing.T) {
	record := &models.CartRecord{
		ID:        uuid.New(),
		SessionID: "sess-9",
		Status:    enums.CartStatusActive,
		Currency:  "TRY",
	}
	handler := CartFetch(&stubCartService{record: record}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = withSession(req, "sess-9")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartdto.CartQuote `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != record.ID {
		t.Fatalf("unexpected cart id: %s", envelope.Data.ID)
	}
}

func TestCartFetchNotFound(t *testing.T) {
	handler := CartFetch(&stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "missing")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = withSession(req, "sess-9")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartClear(t *testing.T) {
	service := &stubCartService{}
	handler := CartClear(service, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req = withSession(req, "sess-9")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !service.cleared || service.lastSessionID != "sess-9" {
		t.Fatalf("expected clear forwarded with session, got %+v", service)
	}
}
