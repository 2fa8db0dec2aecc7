package source

import (
	"fmt"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/sequence"
)

// Model returns the attached model, or nil. Editing it requires the
// writer lock; see Edit.
func (s *Source) Model(rl ReaderLock) *sequence.Model {
	s.checkReader(rl)
	return s.model
}

// Edit runs fn on the attached model. Edits mark the model as edited and
// make outstanding cursors seek on their next read.
func (s *Source) Edit(wl WriterLock, fn func(m *sequence.Model)) error {
	s.checkWriter(wl)
	if s.model == nil {
		return ErrNoModel
	}
	fn(s.model)
	return nil
}

// HasModel reports whether a model is attached.
func (s *Source) HasModel(rl ReaderLock) bool {
	s.checkReader(rl)
	return s.model != nil
}

// SetModel attaches m, replacing any previous model.
func (s *Source) SetModel(wl WriterLock, m *sequence.Model) {
	s.checkWriter(wl)
	s.setModel(m)
}

func (s *Source) setModel(m *sequence.Model) {
	s.model = m
	s.log.Info("source switched model",
		s.log.Field().String("source", s.Name()),
		s.log.Field().Bool("attached", m != nil))
	s.invalidate()
	s.modelChanged.Emit(struct{}{})
}

// DropModel detaches the model. Reads fall back to the persisted store.
func (s *Source) DropModel(wl WriterLock) {
	s.checkWriter(wl)
	s.setModel(nil)
}

// DestroyModel detaches the model without notifying observers of the
// change; cursors are still invalidated.
func (s *Source) DestroyModel(wl WriterLock) {
	s.checkWriter(wl)
	s.destroyModel()
}

func (s *Source) destroyModel() {
	s.model = nil
	s.invalidate()
}

// LoadModel builds a model from the persisted store. An attached model is
// kept unless force is set.
func (s *Source) LoadModel(wl WriterLock, force bool) error {
	s.checkWriter(wl)
	return s.loadModel(force)
}

func (s *Source) loadModel(force bool) error {
	if s.model != nil && !force {
		return nil
	}
	events, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("source %q: load model: %w", s.Name(), err)
	}
	s.setModel(sequence.New(events))
	return nil
}

// Flush commits everything appended to the persisted store.
func (s *Source) Flush(wl WriterLock) error {
	s.checkWriter(wl)
	return s.store.Flush()
}

// SessionSaved brings the persisted store up to date. An edited model
// overwrites it; otherwise pending appends are flushed.
func (s *Source) SessionSaved(wl WriterLock) error {
	s.checkWriter(wl)

	if s.model == nil || !s.model.Edited() {
		return s.store.Flush()
	}

	// The store reports the overwrite through storeReplaced, which must not
	// treat our own sync as a replacement of the model.
	s.flushing = true
	defer func() { s.flushing = false }()
	if err := s.model.SyncTo(s.store); err != nil {
		return fmt.Errorf("source %q: sync model: %w", s.Name(), err)
	}
	return nil
}

// Flushing reports whether a model sync is in progress.
func (s *Source) Flushing(rl ReaderLock) bool {
	s.checkReader(rl)
	return s.flushing
}

// ReplaceContents overwrites the persisted store with events. An attached
// model is reloaded from the new contents.
func (s *Source) ReplaceContents(wl WriterLock, events []contracts.Event) error {
	s.checkWriter(wl)
	return s.store.Replace(events)
}

// storeReplaced runs after the store's contents were overwritten.
func (s *Source) storeReplaced() {
	if s.flushing || s.model == nil {
		return
	}
	if err := s.loadModel(true); err != nil {
		s.log.Error("failed to reload model after replace",
			s.log.Field().String("source", s.Name()),
			s.log.Field().Error("error", err))
	}
}
