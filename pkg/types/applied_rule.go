package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppliedRule snapshots the discount rule that priced a cart line at quote
// time, so later rule edits do not rewrite history.
type AppliedRule struct {
	RuleID          uuid.UUID        `json:"rule_id"`
	Name            string           `json:"name"`
	MinQuantity     int              `json:"min_quantity"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	FixedUnitPrice  *decimal.Decimal `json:"fixed_unit_price,omitempty"`
}

// Value serializes the snapshot to JSON for the jsonb column.
func (a *AppliedRule) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan decodes a jsonb column into the snapshot.
func (a *AppliedRule) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, a)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
