package smfstore

import (
	"sort"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/sequence"
)

// Read delivers committed events in [SourceStart+Start, SourceStart+Start+Count)
// to dst. It keeps no position between calls. scratch is reused for
// looped-event copies and returned, possibly grown, for the next call.
func (s *Store) Read(dst contracts.Sink, tm contracts.TempoMap, req *contracts.ReadRequest, scratch []byte) (contracts.Beats, []byte) {
	begin := req.SourceStart.Add(req.Start)
	end := begin.Add(req.Count)
	i := sort.Search(len(s.committed), func(i int) bool {
		return req.SourceStart+s.committed[i].Time >= begin
	})
	for ; i < len(s.committed); i++ {
		ev := &s.committed[i]
		at := req.SourceStart + ev.Time
		if at >= end {
			break
		}
		scratch = sequence.Deliver(dst, tm, req, at, ev, scratch)
	}
	return req.Count, scratch
}

// Write drains events stamped before limit from src, converts them to beats
// relative to sourceStart and queues them. Each queued event is also passed
// to also, when set. It returns the number of events taken.
func (s *Store) Write(src contracts.RingSource, tm contracts.TempoMap, sourceStart, limit contracts.Samples, also func(contracts.Event)) int {
	origin := tm.SamplesToBeats(sourceStart)
	n := 0
	for {
		te, ok := src.Next(limit)
		if !ok {
			return n
		}
		n++
		ev := contracts.Event{
			Time:   tm.SamplesToBeats(te.Time) - origin,
			Type:   te.Type,
			Buffer: te.Buffer,
		}
		if !s.accept(ev) {
			continue
		}
		s.pending = append(s.pending, ev.Clone())
		if also != nil {
			also(ev)
		}
	}
}
