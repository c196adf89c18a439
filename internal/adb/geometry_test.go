// File: internal/adb/geometry_test.go
package adb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate_Valid(t *testing.T) {
	cases := []struct{ x, y int }{
		{0, 0},
		{1, 0},
		{0, 1},
		{1080, 2340},
	}
	for _, tc := range cases {
		c, err := NewCoordinate(tc.x, tc.y)
		require.NoError(t, err, "coordinate (%d,%d) should be valid", tc.x, tc.y)
		assert.Equal(t, tc.x, c.X)
		assert.Equal(t, tc.y, c.Y)
	}
}

func TestNewCoordinate_Negative(t *testing.T) {
	cases := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 10},
		{"negative y", 10, -1},
		{"both negative", -5, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCoordinate(tc.x, tc.y)
			require.Error(t, err)

			var invalid *InvalidArgumentError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestCoordinate_ValidateNamesOffendingAxis(t *testing.T) {
	var invalid *InvalidArgumentError

	err := Coordinate{X: -1, Y: 0}.Validate()
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "x", invalid.Name)

	err = Coordinate{X: 0, Y: -1}.Validate()
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "y", invalid.Name)
}
