package termpic

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/blacktop/go-termpic/pkg/csi"
)

// TerminalGeometry is the space available for an image: columns, and rows
// counted in half-character pixel rows.
type TerminalGeometry struct {
	Cols      int
	PixelRows int
}

// DefaultGeometry is used when the terminal size cannot be queried
var DefaultGeometry = TerminalGeometry{Cols: 79, PixelRows: 100}

// GeometryFromCells converts a terminal size in character cells to a
// TerminalGeometry. Rows are doubled and, when there is more than one row,
// two pixel rows (one character row) are kept free for the shell prompt.
func GeometryFromCells(cols, rows int) TerminalGeometry {
	pixelRows := rows * 2
	if rows > 1 {
		pixelRows -= 2
	}
	return TerminalGeometry{Cols: cols, PixelRows: pixelRows}
}

func (g TerminalGeometry) String() string {
	return fmt.Sprintf("%d cols x %d pixel rows", g.Cols, g.PixelRows)
}

// QueryTerminalGeometry returns the current terminal geometry.
// It asks stdout, then stdin, then the controlling tty;
// if all of them fail it returns DefaultGeometry and false.
func QueryTerminalGeometry() (TerminalGeometry, bool) {
	for _, f := range []*os.File{os.Stdout, os.Stdin} {
		if cols, rows, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && rows > 0 {
			return GeometryFromCells(cols, rows), true
		}
	}
	if cols, rows, ok := csi.QueryTextAreaSizeInChars(); ok {
		return GeometryFromCells(cols, rows), true
	}
	return DefaultGeometry, false
}
