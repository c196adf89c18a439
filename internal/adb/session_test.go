// File: internal/adb/session_test.go
package adb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeRunner records every adb invocation and replays scripted output.
type fakeRunner struct {
	calls   [][]string
	output  string
	err     error
	onPull  func(local string) // lets CaptureUIState tests materialize the file
}

func (f *fakeRunner) run(ctx context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return "", f.err
	}
	if f.onPull != nil && len(args) > 2 && args[2] == "pull" {
		f.onPull(args[len(args)-1])
	}
	return f.output, nil
}

func newTestSession(t *testing.T, serial string, run runner) *Session {
	t.Helper()
	return &Session{
		serial:  serial,
		dumpDir: t.TempDir(),
		run:     run,
		logger:  zaptest.NewLogger(t),
	}
}

// -- Device enumeration and binding --

const twoDeviceListing = "List of devices attached\nemulator-5554\tdevice\nR58M123ABC\tdevice\n\n"

func TestParseDeviceList(t *testing.T) {
	devices := parseDeviceList(twoDeviceListing)
	require.Len(t, devices, 2)
	assert.Equal(t, "emulator-5554", devices[0].Serial)
	assert.Equal(t, "R58M123ABC", devices[1].Serial)
}

func TestParseDeviceList_SkipsUnauthorizedAndOffline(t *testing.T) {
	out := "List of devices attached\nemulator-5554\tdevice\nR58M123ABC\tunauthorized\nXYZ\toffline\n"
	devices := parseDeviceList(out)
	require.Len(t, devices, 1)
	assert.Equal(t, "emulator-5554", devices[0].Serial)
}

func TestBind_NoDevices(t *testing.T) {
	s := newTestSession(t, "", nil)
	err := s.bind(nil)
	require.ErrorIs(t, err, ErrNoDevice)
}

func TestBind_AmbiguousWithoutSerial(t *testing.T) {
	s := newTestSession(t, "", nil)
	err := s.bind(parseDeviceList(twoDeviceListing))
	require.ErrorIs(t, err, ErrAmbiguousDevice)
}

func TestBind_SingleDeviceAdoptsSerial(t *testing.T) {
	s := newTestSession(t, "", nil)
	err := s.bind([]Device{{Serial: "emulator-5554", State: "device"}})
	require.NoError(t, err)
	assert.Equal(t, "emulator-5554", s.Serial())
}

func TestBind_ExplicitSerialAmongMany(t *testing.T) {
	s := newTestSession(t, "R58M123ABC", nil)
	err := s.bind(parseDeviceList(twoDeviceListing))
	require.NoError(t, err)
	assert.Equal(t, "R58M123ABC", s.Serial())
}

func TestBind_ExplicitSerialNotConnected(t *testing.T) {
	s := newTestSession(t, "nope-0000", nil)
	err := s.bind(parseDeviceList(twoDeviceListing))

	var notFound *DeviceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope-0000", notFound.Serial)
}

// -- Binary resolution --

func TestResolveADBPath_ConfiguredPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adb")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	got, err := resolveADBPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolveADBPath_ConfiguredPathMissing(t *testing.T) {
	_, err := resolveADBPath(filepath.Join(t.TempDir(), "missing-adb"))
	require.ErrorIs(t, err, ErrToolNotFound)
}

func TestResolveADBPath_AndroidHome(t *testing.T) {
	home := t.TempDir()
	tools := filepath.Join(home, "platform-tools")
	require.NoError(t, os.MkdirAll(tools, 0o755))
	adbPath := filepath.Join(tools, "adb")
	require.NoError(t, os.WriteFile(adbPath, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("ANDROID_HOME", home)

	got, err := resolveADBPath("")
	require.NoError(t, err)
	assert.Equal(t, adbPath, got)
}

func TestResolveADBPath_NotFoundAnywhere(t *testing.T) {
	t.Setenv("ANDROID_HOME", "")
	t.Setenv("PATH", t.TempDir())

	_, err := resolveADBPath("")
	require.ErrorIs(t, err, ErrToolNotFound)
}

// -- Operations --

func TestTap_IssuesSingleTapWithSerial(t *testing.T) {
	fake := &fakeRunner{}
	s := newTestSession(t, "emulator-5554", fake)

	c, err := NewCoordinate(100, 200)
	require.NoError(t, err)
	require.NoError(t, s.Tap(context.Background(), c))

	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"-s", "emulator-5554", "shell", "input", "tap", "100", "200"}, fake.calls[0])
}

func TestTap_RevalidatesCoordinates(t *testing.T) {
	fake := &fakeRunner{}
	s := newTestSession(t, "emulator-5554", fake)

	err := s.Tap(context.Background(), Coordinate{X: -3, Y: 10})
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, fake.calls, "invalid coordinates must never reach the channel")
}

func TestSwipe_IssuesGesture(t *testing.T) {
	fake := &fakeRunner{}
	s := newTestSession(t, "emulator-5554", fake)

	from := Coordinate{X: 10, Y: 20}
	to := Coordinate{X: 30, Y: 40}
	require.NoError(t, s.Swipe(context.Background(), from, to, 300*time.Millisecond))

	require.Len(t, fake.calls, 1)
	assert.Equal(t,
		[]string{"-s", "emulator-5554", "shell", "input", "swipe", "10", "20", "30", "40", "300"},
		fake.calls[0],
	)
}

func TestSwipe_NegativeDuration(t *testing.T) {
	fake := &fakeRunner{}
	s := newTestSession(t, "emulator-5554", fake)

	err := s.Swipe(context.Background(), Coordinate{X: 1, Y: 1}, Coordinate{X: 2, Y: 2}, -time.Millisecond)
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "duration", invalid.Name)
	assert.Empty(t, fake.calls)
}

func TestEnterText_ForwardsLiteralString(t *testing.T) {
	fake := &fakeRunner{}
	s := newTestSession(t, "emulator-5554", fake)

	require.NoError(t, s.EnterText(context.Background(), "hello world"))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"-s", "emulator-5554", "shell", "input", "text", "hello world"}, fake.calls[0])
}

func TestPressKey(t *testing.T) {
	fake := &fakeRunner{}
	s := newTestSession(t, "emulator-5554", fake)

	require.NoError(t, s.PressKey(context.Background(), KeyHome))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"-s", "emulator-5554", "shell", "input", "keyevent", "3"}, fake.calls[0])

	err := s.PressKey(context.Background(), KeyCode(-2))
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
}

func TestCaptureUIState_DumpThenPull(t *testing.T) {
	fake := &fakeRunner{
		onPull: func(local string) {
			_ = os.WriteFile(local, []byte("<hierarchy/>"), 0o644)
		},
	}
	s := newTestSession(t, "emulator-5554", fake)

	path, err := s.CaptureUIState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.dumpDir, dumpFileName), path)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, []string{"-s", "emulator-5554", "shell", "uiautomator", "dump", remoteDumpPath}, fake.calls[0])
	assert.Equal(t, []string{"-s", "emulator-5554", "pull", remoteDumpPath, path}, fake.calls[1])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<hierarchy/>", string(data))
}

func TestChannelError_Propagates(t *testing.T) {
	channelErr := &ChannelError{Args: []string{"shell"}, Stderr: "device offline", Err: errors.New("exit status 1")}
	fake := &fakeRunner{err: channelErr}
	s := newTestSession(t, "emulator-5554", fake)

	err := s.Tap(context.Background(), Coordinate{X: 1, Y: 1})
	var chErr *ChannelError
	require.ErrorAs(t, err, &chErr)
	assert.True(t, strings.Contains(chErr.Error(), "device offline"))
}
