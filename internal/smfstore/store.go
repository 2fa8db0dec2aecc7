// Package smfstore is the persisted, append-only representation of a
// source: a Standard MIDI File image, optionally mirrored to disk.
//
// A Store is not safe for concurrent use; the owning source guards it with
// its reader/writer lock.
package smfstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/sequence"
	"go.uber.org/multierr"
)

// Store holds committed events, their encoded SMF image, and events
// appended since the last flush.
type Store struct {
	log       contracts.Logger
	path      string
	data      []byte
	committed []contracts.Event
	pending   []contracts.Event
	removable bool
	onReplace func()
}

var (
	_ sequence.Appender = (*Store)(nil)
	_ sequence.Replacer = (*Store)(nil)
)

// New returns a store. When path names an existing file it is decoded;
// a missing file is created on the first flush. onReplace, if set, runs
// after every Replace.
func New(log contracts.Logger, path string, onReplace func()) (*Store, error) {
	s := &Store{log: log, path: path, removable: true, onReplace: onReplace}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("smfstore: read %s: %w", path, err)
	}
	events, err := decode(data)
	if err != nil {
		return nil, err
	}
	s.data = data
	s.committed = events
	return s, nil
}

// Path returns the backing file, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// Append queues ev for the next flush. Events before the source start and
// events that are not MIDI messages are dropped with a warning.
func (s *Store) Append(ev contracts.Event) {
	if !s.accept(ev) {
		return
	}
	s.pending = append(s.pending, ev.Clone())
}

func (s *Store) accept(ev contracts.Event) bool {
	if ev.Time < 0 {
		s.log.Warn("dropping event before source start", s.log.Field().Int64("time", int64(ev.Time)))
		return false
	}
	if !storable(ev) {
		s.log.Warn("dropping event that is not a MIDI message",
			s.log.Field().Int64("time", int64(ev.Time)),
			s.log.Field().Uint64("type", uint64(ev.Type)),
			s.log.Field().Int("size", len(ev.Buffer)))
		return false
	}
	return true
}

// Pending returns the number of events appended since the last flush.
func (s *Store) Pending() int {
	return len(s.pending)
}

// Len returns the number of committed events.
func (s *Store) Len() int {
	return len(s.committed)
}

// Empty reports whether the store holds no events at all.
func (s *Store) Empty() bool {
	return len(s.committed) == 0 && len(s.pending) == 0
}

// Bytes returns the persisted SMF image.
func (s *Store) Bytes() []byte {
	return s.data
}

// Flush commits pending events and rewrites the persisted image.
func (s *Store) Flush() error {
	if len(s.pending) == 0 && s.data != nil {
		return nil
	}
	merged := append(append([]contracts.Event(nil), s.committed...), s.pending...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time < merged[j].Time
	})
	if err := s.commit(merged); err != nil {
		return err
	}
	s.pending = nil
	return nil
}

// Replace overwrites the store with events, discarding anything pending.
func (s *Store) Replace(events []contracts.Event) error {
	sorted := make([]contracts.Event, 0, len(events))
	for _, ev := range events {
		if s.accept(ev) {
			sorted = append(sorted, ev.Clone())
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	if err := s.commit(sorted); err != nil {
		return err
	}
	s.pending = nil
	if s.onReplace != nil {
		s.onReplace()
	}
	return nil
}

func (s *Store) commit(events []contracts.Event) error {
	data, err := encode(events)
	if err != nil {
		return err
	}
	if s.path != "" {
		if err := writeFile(s.path, data); err != nil {
			return err
		}
	}
	s.data = data
	s.committed = events
	return nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("smfstore: create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("smfstore: write %s: %w", path, err)
	}
	return f.Sync()
}

// Load decodes the persisted image. Pending events are not included.
func (s *Store) Load() ([]contracts.Event, error) {
	return decode(s.data)
}

// PreventDeletion marks the persisted data as committed for good.
func (s *Store) PreventDeletion() {
	s.removable = false
}

// Removable reports whether the persisted data may be deleted.
func (s *Store) Removable() bool {
	return s.removable
}
