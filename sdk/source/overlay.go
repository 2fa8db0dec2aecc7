package source

import (
	"maps"

	"github.com/leandrodaf/timeline/sdk/contracts"
)

// InterpolationOf returns the interpolation style of p: the source's
// override if it has one, the project default otherwise.
func (s *Source) InterpolationOf(rl ReaderLock, p contracts.Parameter) contracts.InterpolationStyle {
	s.checkReader(rl)
	return s.interpolationOf(p)
}

func (s *Source) interpolationOf(p contracts.Parameter) contracts.InterpolationStyle {
	if style, ok := s.interpolation[p]; ok {
		return style
	}
	return s.defaults.InterpolationOf(p)
}

// SetInterpolationOf sets the interpolation style of p. Setting the project
// default removes the override, so later changes of the default apply.
func (s *Source) SetInterpolationOf(wl WriterLock, p contracts.Parameter, style contracts.InterpolationStyle) {
	s.checkWriter(wl)
	if s.interpolationOf(p) == style {
		return
	}
	if s.defaults.InterpolationOf(p) == style {
		delete(s.interpolation, p)
	} else {
		s.interpolation[p] = style
	}
	s.interpolationChanged.Emit(InterpolationChange{Parameter: p, Style: style})
}

// AutomationStateOf returns the automation state of p, Play unless overridden.
func (s *Source) AutomationStateOf(rl ReaderLock, p contracts.Parameter) contracts.AutoState {
	s.checkReader(rl)
	return s.automationStateOf(p)
}

func (s *Source) automationStateOf(p contracts.Parameter) contracts.AutoState {
	if state, ok := s.automation[p]; ok {
		return state
	}
	// Recorded or imported controllers play back unless told otherwise.
	return contracts.Play
}

// SetAutomationStateOf sets the automation state of p.
func (s *Source) SetAutomationStateOf(wl WriterLock, p contracts.Parameter, state contracts.AutoState) {
	s.checkWriter(wl)
	if s.automationStateOf(p) == state {
		return
	}
	if state == contracts.Play {
		delete(s.automation, p)
	} else {
		s.automation[p] = state
	}
	s.automationChanged.Emit(AutomationChange{Parameter: p, State: state})
}

// InterpolationOverrides returns a copy of the explicit interpolation entries.
func (s *Source) InterpolationOverrides(rl ReaderLock) map[contracts.Parameter]contracts.InterpolationStyle {
	s.checkReader(rl)
	return maps.Clone(s.interpolation)
}

// AutomationOverrides returns a copy of the explicit automation entries.
func (s *Source) AutomationOverrides(rl ReaderLock) map[contracts.Parameter]contracts.AutoState {
	s.checkReader(rl)
	return maps.Clone(s.automation)
}

// CopyInterpolationFrom replaces the interpolation overrides with those of
// other, which the caller must hold at least a reader lock on. This is
// initialization, not an edit: nothing is emitted.
func (s *Source) CopyInterpolationFrom(wl WriterLock, other *Source) {
	s.checkWriter(wl)
	s.copyInterpolationFrom(other)
}

func (s *Source) copyInterpolationFrom(other *Source) {
	s.interpolation = maps.Clone(other.interpolation)
	if s.interpolation == nil {
		s.interpolation = make(map[contracts.Parameter]contracts.InterpolationStyle)
	}
}

// CopyAutomationStateFrom replaces the automation overrides with those of
// other, without notifications. The caller must hold a lock on other.
func (s *Source) CopyAutomationStateFrom(wl WriterLock, other *Source) {
	s.checkWriter(wl)
	s.copyAutomationStateFrom(other)
}

func (s *Source) copyAutomationStateFrom(other *Source) {
	s.automation = maps.Clone(other.automation)
	if s.automation == nil {
		s.automation = make(map[contracts.Parameter]contracts.AutoState)
	}
}
