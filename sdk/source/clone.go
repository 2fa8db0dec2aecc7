package source

import (
	"github.com/leandrodaf/timeline/sdk/contracts"
)

// CloneRange copies the natural position, the overlays and the events in
// [begin, end) into dst, which it locks exclusively. begin 0 and end
// contracts.MaxBeats copy everything. dst's model is rebuilt from its
// flushed store and its persisted data is marked as not removable.
//
// Without a model nothing is transferred and ErrNoModel is returned; the
// position and overlays have already been copied by then.
func (s *Source) CloneRange(rl ReaderLock, dst *Source, begin, end contracts.Beats) error {
	s.checkReader(rl)
	if dst == s {
		return ErrSelfClone
	}

	wl := dst.AcquireWriter()
	defer wl.Release()

	dst.naturalPosition = s.naturalPosition
	dst.copyInterpolationFrom(s)
	dst.copyAutomationStateFrom(s)

	if s.model == nil {
		s.log.Error("programming error: no model for source during clone", s.log.Field().String("source", s.Name()))
		return ErrNoModel
	}

	full := begin == 0 && end == contracts.MaxBeats
	if full {
		s.model.WriteTo(dst.store)
	} else {
		s.model.WriteSectionTo(dst.store, begin, end, false)
	}

	if err := dst.store.Flush(); err != nil {
		return err
	}

	if full {
		dst.destroyModel()
		if err := dst.loadModel(false); err != nil {
			return err
		}
	} else if err := dst.loadModel(true); err != nil {
		return err
	}

	dst.store.PreventDeletion()
	return nil
}

// ExportRange appends the events in [begin, end) to dst, rebased so that
// begin becomes zero, and flushes dst. Nothing else about dst changes.
func (s *Source) ExportRange(rl ReaderLock, dst *Source, begin, end contracts.Beats) error {
	s.checkReader(rl)
	if dst == s {
		return ErrSelfClone
	}

	wl := dst.AcquireWriter()
	defer wl.Release()

	if s.model == nil {
		s.log.Error("programming error: no model for source during export", s.log.Field().String("source", s.Name()))
		return ErrNoModel
	}

	s.model.WriteSectionTo(dst.store, begin, end, true)
	return dst.store.Flush()
}
