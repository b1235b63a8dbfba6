package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/younwookim/tilerun/internal/application/replay"
	"github.com/younwookim/tilerun/internal/application/world"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
)

// Summary is the state of a world after a headless replay
type Summary struct {
	Map    string
	Frames uint64
	Deaths int
	Alive  bool
	X, Y   float64
	Life   int
}

func (s Summary) String() string {
	return fmt.Sprintf("map=%s frames=%d deaths=%d alive=%t pos=(%.2f,%.2f) life=%d",
		s.Map, s.Frames, s.Deaths, s.Alive, s.X, s.Y, s.Life)
}

// runHeadless plays every recorded frame against w without a window.
// Each frame waits for any pending map load first, which is the same point
// at which the interactive scene pulls its next replay frame.
func runHeadless(ctx context.Context, w *world.World, data replay.ReplayData) (Summary, error) {
	r := replay.NewReplayer(data)
	if err := w.LoadMap(r.Map()); err != nil {
		return Summary{}, fmt.Errorf("failed to start replay: %w", err)
	}

	for {
		if err := w.WaitLoaded(ctx); err != nil {
			return Summary{}, err
		}
		a, ok := r.Next()
		if !ok {
			break
		}
		if !w.Tick(a) {
			return Summary{}, fmt.Errorf("frame %d was not simulated", r.CurrentFrame())
		}
	}

	s := summarize(w)
	logger.Log.WithFields(logrus.Fields{
		"map":    s.Map,
		"frames": s.Frames,
		"deaths": s.Deaths,
	}).Info("headless replay finished")
	return s, nil
}

func summarize(w *world.World) Summary {
	s := Summary{
		Map:    w.MapID(),
		Frames: w.Frame(),
		Deaths: w.Deaths(),
	}
	if p := w.Player(); p != nil {
		s.Alive = true
		s.X, s.Y = p.X, p.Y
		if p.Vitals != nil {
			s.Life = p.Vitals.Life
		}
	}
	return s
}
