package source

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/leandrodaf/timeline/internal/state"
	"github.com/leandrodaf/timeline/sdk/contracts"
)

// State describes the source for persistence: identity, capture provenance
// and one entry per override. Entries are ordered by parameter symbol.
func (s *Source) State(rl ReaderLock) contracts.SourceState {
	s.checkReader(rl)

	doc := contracts.SourceState{
		ID:          s.ID().String(),
		Name:        s.Name(),
		CapturedFor: s.capturedFor,
	}
	for p, style := range s.interpolation {
		doc.Interpolation = append(doc.Interpolation, contracts.NewInterpolationEntry(p.String(), style.String()))
	}
	for p, st := range s.automation {
		doc.Automation = append(doc.Automation, contracts.NewAutomationEntry(p.String(), st.String()))
	}
	slices.SortFunc(doc.Interpolation, func(a, b contracts.InterpolationEntry) int {
		return strings.Compare(*a.Parameter, *b.Parameter)
	})
	slices.SortFunc(doc.Automation, func(a, b contracts.AutomationEntry) int {
		return strings.Compare(*a.Parameter, *b.Parameter)
	})
	return doc
}

// MarshalState encodes State as YAML.
func (s *Source) MarshalState(rl ReaderLock) ([]byte, error) {
	return state.Marshal(s.State(rl))
}

// SetState restores identity and provenance from a persisted document and
// applies its overlays through the same setters as interactive changes. An
// empty id or name leaves the current one in place. Entries for parameters
// that cannot be automated, or that are not recognized, are skipped with a
// warning. An entry without its
// parameter, style or state aborts with an error; entries before it stay
// applied.
//
// Older documents wrote an empty style to mean "not the default", which
// toggles between discrete and linear, and an empty state to mean off.
func (s *Source) SetState(wl WriterLock, doc contracts.SourceState) error {
	s.checkWriter(wl)

	ident := *s.ident.Load()
	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			s.log.Error("invalid source id in state", s.log.Field().String("id", doc.ID))
			return fmt.Errorf("source %q: %w: %v", ident.name, contracts.ErrInvalidID, err)
		}
		ident.id = id
	}
	if doc.Name != "" {
		ident.name = doc.Name
	}
	s.ident.Store(&ident)
	s.capturedFor = doc.CapturedFor

	for _, entry := range doc.Interpolation {
		if entry.Parameter == nil {
			s.log.Error("missing parameter property on interpolation entry", s.log.Field().String("source", s.Name()))
			return fmt.Errorf("source %q: interpolation: %w", s.Name(), contracts.ErrMissingParameter)
		}
		p, ok := s.stateParameter(*entry.Parameter)
		if !ok {
			continue
		}
		if entry.Style != nil && *entry.Style == "" {
			s.SetInterpolationOf(wl, p, toggled(s.defaults.InterpolationOf(p)))
			continue
		}
		if entry.Style == nil {
			s.log.Error("missing style property on interpolation entry", s.log.Field().String("parameter", *entry.Parameter))
			return fmt.Errorf("source %q: %s: %w", s.Name(), *entry.Parameter, contracts.ErrMissingStyle)
		}
		style, err := contracts.ParseInterpolationStyle(*entry.Style)
		if err != nil {
			return fmt.Errorf("source %q: %s: %w", s.Name(), *entry.Parameter, err)
		}
		s.SetInterpolationOf(wl, p, style)
	}

	for _, entry := range doc.Automation {
		if entry.Parameter == nil {
			s.log.Error("missing parameter property on automation entry", s.log.Field().String("source", s.Name()))
			return fmt.Errorf("source %q: automation: %w", s.Name(), contracts.ErrMissingParameter)
		}
		p, ok := s.stateParameter(*entry.Parameter)
		if !ok {
			continue
		}
		if entry.State != nil && *entry.State == "" {
			s.SetAutomationStateOf(wl, p, contracts.Off)
			continue
		}
		if entry.State == nil {
			s.log.Error("missing state property on automation entry", s.log.Field().String("parameter", *entry.Parameter))
			return fmt.Errorf("source %q: %s: %w", s.Name(), *entry.Parameter, contracts.ErrMissingState)
		}
		st, err := contracts.ParseAutoState(*entry.State)
		if err != nil {
			return fmt.Errorf("source %q: %s: %w", s.Name(), *entry.Parameter, err)
		}
		s.SetAutomationStateOf(wl, p, st)
	}
	return nil
}

// UnmarshalState decodes a YAML document and applies it with SetState.
func (s *Source) UnmarshalState(wl WriterLock, data []byte) error {
	doc, err := state.Unmarshal(data)
	if err != nil {
		return err
	}
	return s.SetState(wl, doc)
}

// stateParameter parses a persisted parameter symbol, warning about and
// rejecting anything that cannot carry overlays.
func (s *Source) stateParameter(symbol string) (contracts.Parameter, bool) {
	p, err := contracts.ParseParameter(symbol)
	if err != nil {
		s.log.Warn("ignoring unrecognized parameter", s.log.Field().String("parameter", symbol), s.log.Field().Error("error", err))
		return contracts.Parameter{}, false
	}
	if p.Type == contracts.MidiSystemExclusiveParameter {
		s.log.Warn("parameter is system exclusive; no automation possible", s.log.Field().String("parameter", symbol))
		return contracts.Parameter{}, false
	}
	if !p.Automatable() {
		s.log.Warn("parameter is not legal for a MIDI source; ignoring", s.log.Field().String("parameter", symbol))
		return contracts.Parameter{}, false
	}
	return p, true
}

func toggled(style contracts.InterpolationStyle) contracts.InterpolationStyle {
	if style == contracts.Discrete {
		return contracts.Linear
	}
	return contracts.Discrete
}
