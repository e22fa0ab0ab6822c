package termpic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryFromCells(t *testing.T) {
	tests := []struct {
		name     string
		cols     int
		rows     int
		expected TerminalGeometry
	}{
		{name: "Standard 80x24", cols: 80, rows: 24, expected: TerminalGeometry{Cols: 80, PixelRows: 46}},
		{name: "Two rows", cols: 10, rows: 2, expected: TerminalGeometry{Cols: 10, PixelRows: 2}},
		{name: "Single row keeps both halves", cols: 10, rows: 1, expected: TerminalGeometry{Cols: 10, PixelRows: 2}},
		{name: "Zero rows", cols: 10, rows: 0, expected: TerminalGeometry{Cols: 10, PixelRows: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GeometryFromCells(tt.cols, tt.rows))
		})
	}
}

func TestDefaultGeometry(t *testing.T) {
	assert.Equal(t, 79, DefaultGeometry.Cols)
	assert.Equal(t, 100, DefaultGeometry.PixelRows)
	assert.Equal(t, "79 cols x 100 pixel rows", DefaultGeometry.String())
}

func TestQueryTerminalGeometry(t *testing.T) {
	// Under `go test` there is usually no terminal; either way the result must be usable.
	g, _ := QueryTerminalGeometry()
	assert.Greater(t, g.Cols, 0)
	assert.GreaterOrEqual(t, g.PixelRows, 0)
}
