package sim

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/san-kum/physlab/internal/dynamo"
)

// FrameFunc is called after every tick. Returning ErrStop ends the loop.
type FrameFunc func(s *Session) error

// Loop is the animation-frame driver.
type Loop struct {
	FPS int

	// WallClock steps by elapsed real time (capped at MaxFrameDt) instead of
	// the fixed FrameDt.
	WallClock bool
}

func NewLoop(fps int) *Loop {
	return &Loop{FPS: fps}
}

// Run ticks s until ctx is cancelled or frame returns an error.
func (l *Loop) Run(ctx context.Context, s *Session, frame FrameFunc) error {
	fps := l.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := dynamo.FrameDt
			if l.WallClock {
				dt = math.Min(now.Sub(last).Seconds(), dynamo.MaxFrameDt)
				if dt <= 0 {
					dt = dynamo.FrameDt
				}
			}
			last = now

			if err := s.Tick(dt); err != nil {
				return err
			}
			if frame == nil {
				continue
			}
			if err := frame(s); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
	}
}
