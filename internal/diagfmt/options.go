// Package diagfmt renders diagnostics and pipeline artifacts for the CLI:
// a pretty text form with caret underlining, a JSON form, plus token and
// renamed-tree dumps.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeRelative renders paths relative to the file set's base directory.
	PathModeRelative PathMode = iota
	// PathModeAbsolute always uses the path as stored.
	PathModeAbsolute
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}
