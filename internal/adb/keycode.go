// File: internal/adb/keycode.go
package adb

import (
	"strconv"
	"strings"
)

// KeyCode identifies an Android key event. The named constants cover the keys
// the automation loop commonly needs; any other non-negative integer code is
// accepted as-is.
type KeyCode int

const (
	KeyHome       KeyCode = 3
	KeyBack       KeyCode = 4
	KeyVolumeUp   KeyCode = 24
	KeyVolumeDown KeyCode = 25
	KeyPower      KeyCode = 26
	KeyMenu       KeyCode = 82
)

// keyNames maps symbolic names to codes. Lookup is case-insensitive.
var keyNames = map[string]KeyCode{
	"HOME":        KeyHome,
	"BACK":        KeyBack,
	"MENU":        KeyMenu,
	"POWER":       KeyPower,
	"VOLUME_UP":   KeyVolumeUp,
	"VOLUME_DOWN": KeyVolumeDown,
}

// ParseKeyCode resolves a symbolic key name or a raw integer literal into a
// KeyCode. Negative codes are rejected.
func ParseKeyCode(s string) (KeyCode, error) {
	if code, ok := keyNames[strings.ToUpper(s)]; ok {
		return code, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InvalidArgumentError{Name: "keycode", Value: s, Reason: "not a known key name or integer code"}
	}
	if n < 0 {
		return 0, &InvalidArgumentError{Name: "keycode", Value: n, Reason: "key code must be non-negative"}
	}
	return KeyCode(n), nil
}

// String returns the symbolic name when one exists, otherwise the numeric code.
func (k KeyCode) String() string {
	for name, code := range keyNames {
		if code == k {
			return name
		}
	}
	return strconv.Itoa(int(k))
}
