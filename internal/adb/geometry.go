// File: internal/adb/geometry.go
package adb

// Coordinate is a screen-space point. Both components must be non-negative;
// a Coordinate that fails Validate must never be handed to the device.
type Coordinate struct {
	X int
	Y int
}

// NewCoordinate builds a validated Coordinate.
func NewCoordinate(x, y int) (Coordinate, error) {
	c := Coordinate{X: x, Y: y}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate checks the non-negativity invariant.
func (c Coordinate) Validate() error {
	if c.X < 0 {
		return &InvalidArgumentError{Name: "x", Value: c.X, Reason: "coordinate must be non-negative"}
	}
	if c.Y < 0 {
		return &InvalidArgumentError{Name: "y", Value: c.Y, Reason: "coordinate must be non-negative"}
	}
	return nil
}
