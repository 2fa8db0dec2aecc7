package contracts

import "errors"

// Errors reported while applying a SourceState.
var (
	ErrMissingParameter = errors.New("missing parameter property")
	ErrMissingStyle     = errors.New("missing style property on interpolation entry")
	ErrMissingState     = errors.New("missing state property on automation entry")
	ErrInvalidID        = errors.New("invalid source id")
)

// SourceState is the persisted description of a source: identity, capture
// provenance and the non-default parameter overlays. Entry fields are
// pointers so that an absent key can be told apart from an empty value.
type SourceState struct {
	ID            string               `yaml:"id,omitempty"`
	Name          string               `yaml:"name,omitempty"`
	CapturedFor   string               `yaml:"captured-for,omitempty"`
	Interpolation []InterpolationEntry `yaml:"interpolation,omitempty"`
	Automation    []AutomationEntry    `yaml:"automation,omitempty"`
}

// InterpolationEntry overrides the interpolation style of one parameter.
type InterpolationEntry struct {
	Parameter *string `yaml:"parameter,omitempty"`
	Style     *string `yaml:"style,omitempty"`
}

// AutomationEntry overrides the automation state of one parameter.
type AutomationEntry struct {
	Parameter *string `yaml:"parameter,omitempty"`
	State     *string `yaml:"state,omitempty"`
}

// NewInterpolationEntry builds a complete interpolation entry.
func NewInterpolationEntry(parameter, style string) InterpolationEntry {
	return InterpolationEntry{Parameter: &parameter, Style: &style}
}

// NewAutomationEntry builds a complete automation entry.
func NewAutomationEntry(parameter, state string) AutomationEntry {
	return AutomationEntry{Parameter: &parameter, State: &state}
}
