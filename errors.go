package mfs32

import "errors"

// Sentinel error kinds. Dispatcher code never hand-formats user-facing text;
// it looks up the fixed string for whichever of these errors.Is matches
// (spec.md §6, §7).
var (
	ErrImageNotFound  = errors.New("file system image not found")
	ErrAlreadyOpen    = errors.New("file system image is already open")
	ErrNotOpen        = errors.New("file system not open")
	ErrMustOpenFirst  = errors.New("file system image must be opened first")
	ErrFilenameNeeded = errors.New("filename not given")
	ErrNotFound       = errors.New("file not found")
	ErrNotADirectory  = errors.New("entry is not a directory")
	ErrUnknownCommand = errors.New("unknown command")
)

// "Not enough arguments. (<N> arguments given)" (spec.md §6) carries a
// dynamic count rather than fixed text, so the dispatcher formats it
// directly instead of routing it through a sentinel.
