package main

import (
	"bytes"
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_Success(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), &stderr, func(context.Context) error { return nil })

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
}

func TestRun_CommandError(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), &stderr, func(context.Context) error {
		return errors.New("2 of 4 handshakes failed")
	})

	assert.Equal(t, 1, code)
	assert.Empty(t, stderr.String())
}

func TestRun_Interrupted(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), &stderr, func(ctx context.Context) error {
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return errors.New("context was not cancelled within timeout")
		}
	})

	assert.Equal(t, exitInterrupted, code)
	assert.Contains(t, stderr.String(), "received signal: terminated")
}
