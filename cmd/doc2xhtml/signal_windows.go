//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext derives the context of one invocation. An interrupt
// signal cancels it, which aborts an expand run between
// files and ends the --watch loop. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
