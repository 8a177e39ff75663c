package lineupservice

import "errors"

// Validation gate errors. Each names the list that came up empty.
var (
	ErrNoHitters     = errors.New("No valid hitter stats found for your team.")
	ErrNoPitchers    = errors.New("No valid pitcher stats found for your team.")
	ErrNoOppPitchers = errors.New("No valid opponent pitcher stats found.")
)

// FileErrorPrefix marks failures caused by an unusable uploaded file.
const FileErrorPrefix = "file parsing error: "

// ErrorPrefix is put in front of every error shown to a user.
const ErrorPrefix = "Error processing stats: "
