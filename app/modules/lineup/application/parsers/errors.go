package parsers

import "errors"

// Structural failures. Each one makes the whole input unusable; row-level
// problems never surface as errors.
var (
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrEmptyFile            = errors.New("file is empty")
	ErrMissingSectionColumn = errors.New("missing section column (expected Type or SECTION)")
	ErrUnreadableWorkbook   = errors.New("failed to open workbook")
)
