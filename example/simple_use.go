package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/leandrodaf/timeline/internal/logger"
	"github.com/leandrodaf/timeline/sdk/contracts"
	"github.com/leandrodaf/timeline/sdk/input"
	"github.com/leandrodaf/timeline/sdk/notes"
	"github.com/leandrodaf/timeline/sdk/ring"
	"github.com/leandrodaf/timeline/sdk/sequence"
	"github.com/leandrodaf/timeline/sdk/source"
	"github.com/leandrodaf/timeline/sdk/tempo"
	"gitlab.com/gomidi/midi/v2"
)

const sampleRate = 48000

// printer is a playback sink that prints what it receives.
type printer struct{}

func (printer) Write(pos contracts.Samples, _ contracts.EventType, size int, buf []byte) int {
	fmt.Printf("%8d  %s\n", pos, midi.Message(buf[:size]))
	return size
}

func main() {
	log := logger.NewZapLogger()
	tm := tempo.NewConstant(120, sampleRate)
	clock := input.NewSampleClock(sampleRate, time.Now())

	in, err := input.NewInput(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithClock(clock),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOnCommand, contracts.NoteOffCommand, contracts.ControlChangeCommand},
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI input", log.Field().Error("error", err))
		return
	}

	devices, err := in.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = in.SelectDevice(0); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}

	src, err := source.New(
		contracts.WithLogger(log),
		contracts.WithName("take 1"),
		contracts.WithPath("take1.mid"),
		contracts.WithTempoMap(tm),
	)
	if err != nil {
		log.Error("Failed to create source", log.Field().Error("error", err))
		return
	}
	defer src.Close()

	r := ring.New(1024)
	wl := src.AcquireWriter()
	src.SetModel(wl, sequence.New(nil))
	src.StartCapture(wl)
	src.MarkCaptureStart(wl, 0, clock.Now())
	wl.Release()

	in.StartCapture(r)
	fmt.Println("Capturing MIDI events... Press Ctrl+C to stop.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	const period = sampleRate / 10
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
capture:
	for {
		select {
		case <-ctx.Done():
			break capture
		case <-ticker.C:
			wl := src.AcquireWriter()
			src.Write(wl, r, 0, period)
			wl.Release()
		}
	}

	if err := in.Stop(); err != nil {
		log.Error("Failed to stop MIDI input", log.Field().Error("error", err))
	}

	end := tm.SamplesToBeats(clock.Now())
	wl = src.AcquireWriter()
	src.Write(wl, r, 0, contracts.MaxSamples)
	src.EndCapture(wl, contracts.ResolveStuckNotes, end)
	if err := src.SessionSaved(wl); err != nil {
		log.Error("Failed to save take", log.Field().Error("error", err))
	}
	wl.Release()

	if r.Dropped() > 0 {
		log.Warn("Capture ring overflowed", log.Field().Uint64("dropped", r.Dropped()))
	}

	fmt.Println("Playback:")
	cursor := source.NewCursor()
	defer cursor.Close()
	var tracker notes.Tracker
	rl := src.AcquireReader()
	defer rl.Release()
	for pos := contracts.Beats(0); pos < end; pos += contracts.BeatsOf(1) {
		src.Read(rl, printer{}, cursor, contracts.ReadRequest{
			Start:   pos,
			Count:   contracts.BeatsOf(1),
			Tracker: &tracker,
		})
	}
	tracker.Resolve(printer{}, tm.BeatsToSamples(end))
}
