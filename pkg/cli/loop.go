package cli

import "sync/atomic"

// Capacity of the input channel. Input blocks once it is full.
const inputChSize = 128

// loop is a serial event loop. Events from any goroutine are queued with
// Input; Run dispatches them one by one to the handle callback and redraws
// between batches of events.
type loop struct {
	inputCh  chan event
	redrawCh chan struct{}
	returnCh chan error
	// Set by Redraw(true), cleared when the redraw is done.
	redrawFull atomic.Bool

	handleCb handleCb
	redrawCb redrawCb
}

// An input to the loop: a term.Event, an os.Signal or a func() to call.
type event any

type handleCb func(event)

type redrawCb func(flag redrawFlag)

// Bit flags passed to redrawCb.
type redrawFlag uint

const (
	// The whole screen must be redrawn, not just the difference with the last
	// redraw.
	fullRedraw redrawFlag = 1 << iota
	// Run is about to return.
	finalRedraw
)

func newLoop() *loop {
	return &loop{
		inputCh:  make(chan event, inputChSize),
		redrawCh: make(chan struct{}, 1),
		returnCh: make(chan error, 1),
		handleCb: func(event) {},
		redrawCb: func(redrawFlag) {},
	}
}

// HandleCb sets the handle callback. It must be called before Run.
func (lp *loop) HandleCb(cb handleCb) { lp.handleCb = cb }

// RedrawCb sets the redraw callback. It must be called before Run.
func (lp *loop) RedrawCb(cb redrawCb) { lp.redrawCb = cb }

// Redraw requests a redraw, a full one if full is true. It never blocks.
func (lp *loop) Redraw(full bool) {
	if full {
		lp.redrawFull.Store(true)
	}
	select {
	case lp.redrawCh <- struct{}{}:
	default:
	}
}

// Input queues an event.
func (lp *loop) Input(ev event) { lp.inputCh <- ev }

// Return makes Run return err. It never blocks. Only the first call before Run
// returns has an effect.
func (lp *loop) Return(err error) {
	select {
	case lp.returnCh <- err:
	default:
	}
}

// HasReturned reports whether Return has been called and Run has not yet
// returned.
func (lp *loop) HasReturned() bool { return len(lp.returnCh) == 1 }

// Run runs the loop until Return is called. It never calls two callbacks
// concurrently, so they may share state without locking.
func (lp *loop) Run() error {
	for {
		var flag redrawFlag
		if lp.redrawFull.Swap(false) {
			flag |= fullRedraw
		}
		lp.redrawCb(flag)

		select {
		case ev := <-lp.inputCh:
			if returned, err := lp.drain(ev); returned {
				return err
			}
		case err := <-lp.returnCh:
			return lp.finish(err)
		case <-lp.redrawCh:
		}
	}
}

// Handles ev and then every event already queued, so that a burst of events
// causes only one redraw. It returns true if one of the events caused Return
// to be called.
func (lp *loop) drain(ev event) (bool, error) {
	for {
		lp.handleCb(ev)
		select {
		case err := <-lp.returnCh:
			return true, lp.finish(err)
		default:
		}
		select {
		case ev = <-lp.inputCh:
		default:
			return false, nil
		}
	}
}

func (lp *loop) finish(err error) error {
	lp.redrawCb(finalRedraw)
	return err
}
