// File: internal/adb/session.go

// Package adb is the device control surface: it issues primitive touch,
// swipe, text and key interactions plus UI state capture against exactly one
// connected Android device. Device binding is verified once, at session
// construction; a constructed Session is immutable and guaranteed bound to a
// single valid device for its whole lifetime.
package adb

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/droidpilot/internal/config"
)

// remoteDumpPath is where uiautomator writes the hierarchy on the device.
const remoteDumpPath = "/sdcard/window_dump.xml"

// dumpFileName is the fixed local name of the pulled hierarchy; each capture
// overwrites the previous one.
const dumpFileName = "window_dump.xml"

// Device is one row of `adb devices` output.
type Device struct {
	Serial string
	State  string
}

// Session is a process-wide binding to one target device.
type Session struct {
	serial  string
	dumpDir string
	run     runner
	logger  *zap.Logger
}

// NewSession resolves the adb binary, enumerates connected devices and binds
// to exactly one of them. It fails with ErrToolNotFound, ErrNoDevice,
// ErrAmbiguousDevice or *DeviceNotFoundError; callers never re-resolve device
// identity per call.
func NewSession(ctx context.Context, cfg config.ADBConfig, logger *zap.Logger) (*Session, error) {
	path, err := resolveADBPath(cfg.Path)
	if err != nil {
		return nil, err
	}

	s := &Session{
		serial:  cfg.Serial,
		dumpDir: cfg.DumpDir,
		run:     &execRunner{path: path, timeout: cfg.CommandTimeout},
		logger:  logger.Named("adb"),
	}
	if s.dumpDir == "" {
		s.dumpDir = "."
	}

	devices, err := listDevices(ctx, s.run)
	if err != nil {
		return nil, err
	}
	if err := s.bind(devices); err != nil {
		return nil, err
	}

	s.logger.Info("Device session established",
		zap.String("adb_path", path),
		zap.String("serial", s.serial),
	)
	return s, nil
}

// bind applies the device targeting rules from the enumeration result.
func (s *Session) bind(devices []Device) error {
	if len(devices) == 0 {
		return ErrNoDevice
	}
	if s.serial == "" {
		if len(devices) > 1 {
			return ErrAmbiguousDevice
		}
		s.serial = devices[0].Serial
		return nil
	}
	for _, d := range devices {
		if d.Serial == s.serial {
			return nil
		}
	}
	return &DeviceNotFoundError{Serial: s.serial}
}

// Serial returns the serial of the bound device.
func (s *Session) Serial() string { return s.serial }

// Tap issues a single-point touch at the given coordinates.
func (s *Session) Tap(ctx context.Context, c Coordinate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.logger.Debug("Tapping screen", zap.Int("x", c.X), zap.Int("y", c.Y))
	_, err := s.shell(ctx, "input", "tap", strconv.Itoa(c.X), strconv.Itoa(c.Y))
	return err
}

// Swipe performs a gesture from start to end over the given duration.
func (s *Session) Swipe(ctx context.Context, start, end Coordinate, duration time.Duration) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if duration < 0 {
		return &InvalidArgumentError{Name: "duration", Value: duration, Reason: "duration must be non-negative"}
	}

	s.logger.Debug("Swiping",
		zap.Int("x1", start.X), zap.Int("y1", start.Y),
		zap.Int("x2", end.X), zap.Int("y2", end.Y),
		zap.Duration("duration", duration),
	)
	_, err := s.shell(ctx, "input", "swipe",
		strconv.Itoa(start.X), strconv.Itoa(start.Y),
		strconv.Itoa(end.X), strconv.Itoa(end.Y),
		strconv.FormatInt(duration.Milliseconds(), 10),
	)
	return err
}

// EnterText forwards text to the focused input field. The string is passed
// through literally; characters reserved by `input text` are not escaped.
func (s *Session) EnterText(ctx context.Context, text string) error {
	s.logger.Debug("Entering text", zap.Int("length", len(text)))
	_, err := s.shell(ctx, "input", "text", text)
	return err
}

// PressKey simulates a key event.
func (s *Session) PressKey(ctx context.Context, code KeyCode) error {
	if code < 0 {
		return &InvalidArgumentError{Name: "keycode", Value: int(code), Reason: "key code must be non-negative"}
	}
	s.logger.Debug("Pressing key", zap.Stringer("key", code))
	_, err := s.shell(ctx, "input", "keyevent", strconv.Itoa(int(code)))
	return err
}

// CaptureUIState dumps the current UI hierarchy on the device, pulls it to
// local storage and returns the local path. The path is fixed and the file is
// overwritten on every capture.
func (s *Session) CaptureUIState(ctx context.Context) (string, error) {
	s.logger.Debug("Dumping UI hierarchy")
	if _, err := s.shell(ctx, "uiautomator", "dump", remoteDumpPath); err != nil {
		return "", err
	}

	local := filepath.Join(s.dumpDir, dumpFileName)
	if _, err := s.exec(ctx, "pull", remoteDumpPath, local); err != nil {
		return "", err
	}
	return local, nil
}

// shell runs an `adb shell` subcommand against the bound device.
func (s *Session) shell(ctx context.Context, args ...string) (string, error) {
	return s.exec(ctx, append([]string{"shell"}, args...)...)
}

// exec runs an adb subcommand with the device serial prepended.
func (s *Session) exec(ctx context.Context, args ...string) (string, error) {
	out, err := s.run.run(ctx, append([]string{"-s", s.serial}, args...)...)
	if err != nil {
		s.logger.Error("adb command failed", zap.Strings("args", args), zap.Error(err))
		return "", err
	}
	return out, nil
}

// ListDevices enumerates connected devices without binding a session. It is
// used by the `devices` subcommand and shares the resolution logic with
// NewSession.
func ListDevices(ctx context.Context, cfg config.ADBConfig) ([]Device, error) {
	path, err := resolveADBPath(cfg.Path)
	if err != nil {
		return nil, err
	}
	return listDevices(ctx, &execRunner{path: path, timeout: cfg.CommandTimeout})
}

func listDevices(ctx context.Context, run runner) ([]Device, error) {
	out, err := run.run(ctx, "devices")
	if err != nil {
		return nil, err
	}
	return parseDeviceList(out), nil
}

// parseDeviceList extracts serials from `adb devices` output. The first line
// is the header; only devices in state "device" are usable targets.
func parseDeviceList(out string) []Device {
	var devices []Device
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if fields[1] != "device" {
			continue
		}
		devices = append(devices, Device{Serial: fields[0], State: fields[1]})
	}
	return devices
}

// resolveADBPath locates the adb binary: an explicit configured path wins,
// then $ANDROID_HOME/platform-tools, then $PATH.
func resolveADBPath(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("%w: configured path %q: %v", ErrToolNotFound, configured, err)
		}
		return configured, nil
	}

	name := "adb"
	if runtime.GOOS == "windows" {
		name = "adb.exe"
	}

	if home := os.Getenv("ANDROID_HOME"); home != "" {
		candidate := filepath.Join(home, "platform-tools", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: not in $ANDROID_HOME/platform-tools or $PATH", ErrToolNotFound)
	}
	return path, nil
}
