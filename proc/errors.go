package proc

import "errors"

// Errors reported while acquiring or parsing a mapping table. Parse errors
// wrap one of these sentinels together with the line number and field that
// failed; match with errors.Is. An Iterator that returned a parse error is
// poisoned and keeps returning it; it never resynchronizes on later lines.
var (
	ErrMalformedAddress = errors.New("malformed address")
	ErrMalformedDevice  = errors.New("malformed device")
	ErrMalformedInode   = errors.New("malformed inode")
	ErrTruncatedRecord  = errors.New("truncated record")
	ErrLineTooLong      = errors.New("line too long")
	ErrPathTooLong      = errors.New("path too long")
)
