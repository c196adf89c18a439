// File: internal/automator/interfaces.go
package automator

import (
	"context"
	"time"

	"github.com/xkilldash9x/droidpilot/internal/adb"
)

// DeviceSurface is the slice of the device control surface the loop needs.
// *adb.Session satisfies it; tests substitute a mock.
type DeviceSurface interface {
	Tap(ctx context.Context, c adb.Coordinate) error
	Swipe(ctx context.Context, start, end adb.Coordinate, duration time.Duration) error
	EnterText(ctx context.Context, text string) error
	PressKey(ctx context.Context, code adb.KeyCode) error
	CaptureUIState(ctx context.Context) (string, error)
}
