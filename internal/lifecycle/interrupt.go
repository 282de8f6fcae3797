// Package lifecycle ties command execution to process signals.
package lifecycle

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Interrupt cancels a context when SIGINT or SIGTERM arrives and remembers
// which signal it was.
type Interrupt struct {
	signalChan chan os.Signal
	mu         sync.Mutex
	reason     string
	stopped    bool
}

// NewInterrupt creates an Interrupt that is not yet listening.
func NewInterrupt() *Interrupt {
	return &Interrupt{
		signalChan: make(chan os.Signal, 1),
	}
}

// Start begins listening for signals and returns a context cancelled on the
// first one. The returned cancel func releases the context without a signal.
func (i *Interrupt) Start(ctx context.Context) (context.Context, context.CancelFunc) {
	signal.Notify(i.signalChan, syscall.SIGTERM, syscall.SIGINT)

	runCtx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case sig, ok := <-i.signalChan:
			if ok {
				i.setReason(fmt.Sprintf("received signal: %v", sig))
			}
		case <-runCtx.Done():
		}
		cancel()
	}()

	return runCtx, cancel
}

// setReason records the first reason only.
func (i *Interrupt) setReason(reason string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.reason == "" {
		i.reason = reason
	}
}

// Interrupted reports whether a signal has fired.
func (i *Interrupt) Interrupted() bool {
	return i.Reason() != ""
}

// Reason returns why the context was cancelled, or "".
func (i *Interrupt) Reason() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.reason
}

// Stop stops listening for signals.
func (i *Interrupt) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stopped {
		return
	}
	i.stopped = true
	signal.Stop(i.signalChan)
}
