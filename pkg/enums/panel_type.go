package enums

import "fmt"

// PanelType describes the physical format of an advertising panel.
type PanelType string

const (
	PanelTypeBillboard  PanelType = "billboard"
	PanelTypeCLP        PanelType = "clp"
	PanelTypeMegalight  PanelType = "megalight"
	PanelTypeGiantboard PanelType = "giantboard"
	PanelTypeLEDScreen  PanelType = "led_screen"
)

var validPanelTypes = []PanelType{
	PanelTypeBillboard,
	PanelTypeCLP,
	PanelTypeMegalight,
	PanelTypeGiantboard,
	PanelTypeLEDScreen,
}

// String implements fmt.Stringer.
func (p PanelType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PanelType.
func (p PanelType) IsValid() bool {
	for _, candidate := range validPanelTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// SupportsDoubleSided reports whether the format offers a double-sided rental.
// Only CLP panels are printed on both faces today.
func (p PanelType) SupportsDoubleSided() bool {
	return p == PanelTypeCLP
}

// ParsePanelType converts raw input into a PanelType.
func ParsePanelType(value string) (PanelType, error) {
	for _, candidate := range validPanelTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid panel type %q", value)
}
