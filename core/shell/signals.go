package shell

import (
	"os"
	"os/signal"
)

// InterruptSource reports interrupts that arrived since the last call.
type InterruptSource interface {
	Pending() bool
}

// SignalObserver records os.Interrupt deliveries so Ctrl+C reaches the
// running child but not the interpreter itself.
type SignalObserver struct {
	sigs chan os.Signal
}

var _ InterruptSource = (*SignalObserver)(nil)

// NewSignalObserver starts capturing interrupts. Call Stop to restore the
// default behavior.
func NewSignalObserver() *SignalObserver {
	// A single slot is enough, repeated interrupts collapse into one.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	return &SignalObserver{sigs: sigs}
}

// Pending reports whether an interrupt arrived and clears it.
func (o *SignalObserver) Pending() bool {
	select {
	case <-o.sigs:
		return true
	default:
		return false
	}
}

// Stop unregisters the observer.
func (o *SignalObserver) Stop() {
	signal.Stop(o.sigs)
}
