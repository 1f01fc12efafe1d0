package sim

import "errors"

var (
	// ErrLocked rejects a commit to a parameter that cannot change while running.
	ErrLocked = errors.New("cannot change while running")

	// ErrStop ends a Loop without error when returned from a FrameFunc.
	ErrStop = errors.New("sim: stop")
)
