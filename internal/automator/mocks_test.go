// File: internal/automator/mocks_test.go
package automator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xkilldash9x/droidpilot/internal/adb"
	"github.com/xkilldash9x/droidpilot/internal/llmclient"
)

// swipeCall records the arguments of one Swipe invocation.
type swipeCall struct {
	from, to adb.Coordinate
	duration time.Duration
}

// mockSurface is a scripted DeviceSurface that records every operation.
type mockSurface struct {
	dumpPath   string
	captures   int
	taps       []adb.Coordinate
	swipes     []swipeCall
	texts      []string
	keys       []adb.KeyCode
	captureErr error
	opErr      error
	// tapHook runs while a tap is in flight, before it completes.
	tapHook func()
}

// newMockSurface returns a surface whose captures resolve to a real dump file
// on disk, matching what the loop reads back.
func newMockSurface(t *testing.T) *mockSurface {
	t.Helper()
	path := filepath.Join(t.TempDir(), "window_dump.xml")
	if err := os.WriteFile(path, []byte("<hierarchy rotation=\"0\"/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &mockSurface{dumpPath: path}
}

func (m *mockSurface) CaptureUIState(ctx context.Context) (string, error) {
	m.captures++
	if m.captureErr != nil {
		return "", m.captureErr
	}
	return m.dumpPath, nil
}

func (m *mockSurface) Tap(ctx context.Context, c adb.Coordinate) error {
	if m.tapHook != nil {
		m.tapHook()
	}
	m.taps = append(m.taps, c)
	return m.opErr
}

func (m *mockSurface) Swipe(ctx context.Context, start, end adb.Coordinate, duration time.Duration) error {
	m.swipes = append(m.swipes, swipeCall{from: start, to: end, duration: duration})
	return m.opErr
}

func (m *mockSurface) EnterText(ctx context.Context, text string) error {
	m.texts = append(m.texts, text)
	return m.opErr
}

func (m *mockSurface) PressKey(ctx context.Context, code adb.KeyCode) error {
	m.keys = append(m.keys, code)
	return m.opErr
}

// deviceOps is the total count of action operations issued to the surface,
// excluding state captures.
func (m *mockSurface) deviceOps() int {
	return len(m.taps) + len(m.swipes) + len(m.texts) + len(m.keys)
}

// mockClient replays a scripted sequence of responses and records what it was
// asked.
type mockClient struct {
	responses []string
	calls     int
	systems   []string
	histories [][]llmclient.Message
	err       error
}

func (m *mockClient) Decide(ctx context.Context, system string, history []llmclient.Message) (string, error) {
	m.systems = append(m.systems, system)
	snapshot := make([]llmclient.Message, len(history))
	copy(snapshot, history)
	m.histories = append(m.histories, snapshot)

	if m.err != nil {
		return "", m.err
	}
	if m.calls >= len(m.responses) {
		return "", errors.New("mock client exhausted")
	}
	resp := m.responses[m.calls]
	m.calls++
	return resp, nil
}
