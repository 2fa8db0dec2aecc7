// Package source implements a timeline-indexed MIDI event source.
//
// A Source stores timestamped events addressed in beat time. Playback reads
// it incrementally through caller-owned Cursors, capture appends to it, and
// clone/export copy beat ranges into other sources.
//
// Locking is the caller's job: AcquireReader and AcquireWriter return lock
// tokens that every entry point takes as its first argument, so a caller can
// batch several operations in one critical section. Notifications are
// delivered while the lock is held; observers must not try to lock the
// source again.
package source

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/leandrodaf/timeline/internal/smfstore"
	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/sequence"
	"github.com/leandrodaf/timeline/sdk/signal"
)

var (
	// ErrNoModel is returned by operations that need an attached model.
	ErrNoModel = errors.New("source: no model attached")
	// ErrSelfClone is returned when a source is cloned onto itself.
	ErrSelfClone = errors.New("source: cannot copy a source onto itself")
)

// InterpolationChange is emitted when a parameter's interpolation changes.
type InterpolationChange struct {
	Parameter contracts.Parameter
	Style     contracts.InterpolationStyle
}

// AutomationChange is emitted when a parameter's automation state changes.
type AutomationChange struct {
	Parameter contracts.Parameter
	State     contracts.AutoState
}

// Source is a timeline-indexed event source with an optional editable model
// in front of its persisted store.
type Source struct {
	mu sync.RWMutex

	ident     atomic.Pointer[identity]
	log       contracts.Logger
	tempo     contracts.TempoMap
	defaults  contracts.ParameterDefaults
	transport contracts.Transport

	store    *smfstore.Store
	model    *sequence.Model
	flushing bool

	naturalPosition contracts.Samples
	length          contracts.Beats
	captureLength   contracts.Samples
	writing         bool
	capturedFor     string

	interpolation map[contracts.Parameter]contracts.InterpolationStyle
	automation    map[contracts.Parameter]contracts.AutoState

	invalidated          signal.Signal[bool]
	modelChanged         signal.Signal[struct{}]
	interpolationChanged signal.Signal[InterpolationChange]
	automationChanged    signal.Signal[AutomationChange]
}

// New creates a source. With WithPath the source is backed by that SMF file,
// which is read if it already exists.
func New(opts ...contracts.Option) (*Source, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	s := &Source{
		log:           options.Logger,
		tempo:         options.TempoMap,
		defaults:      options.Defaults,
		transport:     options.Transport,
		interpolation: make(map[contracts.Parameter]contracts.InterpolationStyle),
		automation:    make(map[contracts.Parameter]contracts.AutoState),
	}
	s.ident.Store(&identity{id: uuid.New(), name: options.Name})
	s.store, err = smfstore.New(options.Logger, options.Path, s.storeReplaced)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ReaderLock is a shared lock on one source.
type ReaderLock struct {
	src *Source
}

// Release drops the shared lock.
func (l ReaderLock) Release() {
	l.src.mu.RUnlock()
}

// WriterLock is an exclusive lock on one source.
type WriterLock struct {
	src *Source
}

// Release drops the exclusive lock.
func (l WriterLock) Release() {
	l.src.mu.Unlock()
}

// Reader returns a shared-lock token backed by this exclusive lock, for
// calling read-side entry points inside a writer's critical section. It
// must not be released separately.
func (l WriterLock) Reader() ReaderLock {
	return ReaderLock{src: l.src}
}

// AcquireReader blocks until a shared lock is held.
func (s *Source) AcquireReader() ReaderLock {
	s.mu.RLock()
	return ReaderLock{src: s}
}

// AcquireWriter blocks until the exclusive lock is held.
func (s *Source) AcquireWriter() WriterLock {
	s.mu.Lock()
	return WriterLock{src: s}
}

func (s *Source) checkReader(l ReaderLock) {
	if l.src != s {
		panic("source: reader lock belongs to another source")
	}
}

func (s *Source) checkWriter(l WriterLock) {
	if l.src != s {
		panic("source: writer lock belongs to another source")
	}
}

// identity is replaced as a whole, so ID and Name need no lock.
type identity struct {
	id   uuid.UUID
	name string
}

// ID returns the unique identity of the source.
func (s *Source) ID() uuid.UUID {
	return s.ident.Load().id
}

// Name returns the configured name.
func (s *Source) Name() string {
	return s.ident.Load().name
}

// NaturalPosition returns the anchor of the source on the timeline.
func (s *Source) NaturalPosition(rl ReaderLock) contracts.Samples {
	s.checkReader(rl)
	return s.naturalPosition
}

// SetNaturalPosition moves the anchor of the source.
func (s *Source) SetNaturalPosition(wl WriterLock, pos contracts.Samples) {
	s.checkWriter(wl)
	s.naturalPosition = pos
}

// Length returns the nominal duration.
func (s *Source) Length(rl ReaderLock) contracts.Beats {
	s.checkReader(rl)
	return s.length
}

// CaptureLength returns the number of samples captured so far.
func (s *Source) CaptureLength(rl ReaderLock) contracts.Samples {
	s.checkReader(rl)
	return s.captureLength
}

// Writing reports whether a capture is in progress.
func (s *Source) Writing(rl ReaderLock) bool {
	s.checkReader(rl)
	return s.writing
}

// CapturedFor returns the provenance recorded for a capture.
func (s *Source) CapturedFor(rl ReaderLock) string {
	s.checkReader(rl)
	return s.capturedFor
}

// SetCapturedFor records where a capture came from.
func (s *Source) SetCapturedFor(wl WriterLock, name string) {
	s.checkWriter(wl)
	s.capturedFor = name
}

// Removable reports whether the persisted data may still be deleted.
func (s *Source) Removable(rl ReaderLock) bool {
	s.checkReader(rl)
	return s.store.Removable()
}

// Empty reports whether neither the model nor the store holds events.
func (s *Source) Empty(rl ReaderLock) bool {
	s.checkReader(rl)
	if s.model != nil {
		return s.model.Len() == 0
	}
	return s.store.Empty()
}

// Persisted returns the SMF image of the persisted representation.
func (s *Source) Persisted(rl ReaderLock) []byte {
	s.checkReader(rl)
	return s.store.Bytes()
}

// Invalidate tells every subscribed cursor its position is stale. Active
// notes survive when the transport is rolling.
func (s *Source) Invalidate(wl WriterLock) {
	s.checkWriter(wl)
	s.invalidate()
}

func (s *Source) invalidate() {
	rolling := s.transport != nil && s.transport.Rolling()
	s.invalidated.Emit(rolling)
}

// OnInvalidated subscribes to invalidation; the argument tells whether
// active notes should be preserved.
func (s *Source) OnInvalidated(fn func(preserveNotes bool)) signal.Connection {
	return s.invalidated.Connect(fn)
}

// OnModelChanged subscribes to model attach, replace and drop.
func (s *Source) OnModelChanged(fn func()) signal.Connection {
	return s.modelChanged.Connect(func(struct{}) { fn() })
}

// OnInterpolationChanged subscribes to interactive interpolation changes.
func (s *Source) OnInterpolationChanged(fn func(InterpolationChange)) signal.Connection {
	return s.interpolationChanged.Connect(fn)
}

// OnAutomationStateChanged subscribes to interactive automation state changes.
func (s *Source) OnAutomationStateChanged(fn func(AutomationChange)) signal.Connection {
	return s.automationChanged.Connect(fn)
}

// Close flushes pending data and invalidates every cursor.
func (s *Source) Close() error {
	wl := s.AcquireWriter()
	defer wl.Release()
	err := s.store.Flush()
	s.invalidated.Emit(false)
	return err
}
