// File: internal/adb/errors.go
package adb

import (
	"errors"
	"fmt"
)

// Device binding failures raised at session construction. All of them are
// fatal; no session exists once any of these is returned.
var (
	// ErrToolNotFound means the adb binary could not be resolved.
	ErrToolNotFound = errors.New("adb binary not found")
	// ErrNoDevice means no connected device was reported by adb.
	ErrNoDevice = errors.New("no devices connected")
	// ErrAmbiguousDevice means several devices are connected and no serial
	// was configured to pick one.
	ErrAmbiguousDevice = errors.New("multiple devices connected; a device serial is required")
)

// DeviceNotFoundError reports a configured serial that does not match any
// connected device.
type DeviceNotFoundError struct {
	Serial string
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("device %q not found among connected devices", e.Serial)
}

// InvalidArgumentError reports a device operation argument that violates its
// contract, such as a negative coordinate or swipe duration.
type InvalidArgumentError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}

// ChannelError wraps a failed adb invocation, carrying the diagnostic output
// of the underlying channel. Channel failures are never retried here; retry
// policy, if any, belongs to the caller.
type ChannelError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ChannelError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("adb %v failed: %s", e.Args, e.Stderr)
	}
	return fmt.Sprintf("adb %v failed: %v", e.Args, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }
