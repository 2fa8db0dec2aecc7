package source

import (
	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/sequence"
)

// Read delivers the events in [req.Start, req.Start+req.Count), relative to
// req.SourceStart, to dst at sample positions. The whole span is always
// consumed: the returned count equals req.Count even when nothing was in
// range.
//
// Without a model the persisted store is read directly. With one, a read
// that continues exactly where the cursor's previous read ended reuses the
// cursor's iterator; any other read seeks.
func (s *Source) Read(rl ReaderLock, dst contracts.Sink, cursor *Cursor, req contracts.ReadRequest) contracts.Beats {
	s.checkReader(rl)

	if s.model == nil {
		n, scratch := s.store.Read(dst, s.tempo, &req, cursor.scratch)
		cursor.scratch = scratch
		return n
	}

	cursor.settle()
	linear := cursor.lastReadEnd != 0 && req.Start == cursor.lastReadEnd
	if !linear || !cursor.iter.ValidFor(s.model) {
		// Several readers may traverse this source at once, so all
		// playback state lives in the cursor, never in the source.
		cursor.subscribe(&s.invalidated)
		cursor.iter = s.model.Begin(req.Start, req.Excluded, &cursor.active)
	}

	cursor.lastReadEnd = req.Start.Add(req.Count)

	begin := req.SourceStart.Add(req.Start)
	end := begin.Add(req.Count)
	for it := &cursor.iter; !it.Done(); it.Next() {
		ev := it.Event()
		at := req.SourceStart + ev.Time
		if at < begin {
			continue
		}
		if at >= end {
			break
		}
		cursor.scratch = sequence.Deliver(dst, s.tempo, &req, at, ev, cursor.scratch)
		cursor.active.Track(ev.Buffer)
	}

	return req.Count
}
