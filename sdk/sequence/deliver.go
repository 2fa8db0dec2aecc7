package sequence

import "github.com/leandrodaf/timeline/sdk/contracts"

// Deliver emits ev, positioned at the session beat time at, to dst. Channel
// events go through the request's filter on a copy held in scratch, so the
// stored event is never modified. The tracker sees every event, filtered or
// not. The possibly grown scratch buffer is returned.
func Deliver(dst contracts.Sink, tm contracts.TempoMap, req *contracts.ReadRequest, at contracts.Beats, ev *contracts.Event, scratch []byte) []byte {
	pos := tm.BeatsToSamples(at)
	if req.Loop != nil {
		pos = req.Loop.Squish(pos)
	}

	if req.Filter != nil && contracts.IsChannelEvent(ev.Buffer) {
		scratch = append(scratch[:0], ev.Buffer...)
		if !req.Filter.Filter(scratch) {
			dst.Write(pos, ev.Type, len(scratch), scratch)
		}
	} else {
		dst.Write(pos, ev.Type, len(ev.Buffer), ev.Buffer)
	}

	if req.Tracker != nil {
		req.Tracker.Track(ev.Buffer)
	}
	return scratch
}
