package dataurl

import "fmt"

// ErrorKind classifies a rejected document.
type ErrorKind string

const (
	TooLarge  ErrorKind = "FILE_TOO_LARGE"
	BadType   ErrorKind = "FILE_BAD_TYPE"
	Malformed ErrorKind = "FILE_MALFORMED"
)

// FileError is returned by Validate.
type FileError struct {
	Kind     ErrorKind
	MimeType string
	Detected string
	Size     int
	Limit    int
	Err      error
}

func (e *FileError) Error() string {
	switch e.Kind {
	case TooLarge:
		return fmt.Sprintf("file is %d bytes, limit is %d bytes", e.Size, e.Limit)
	case BadType:
		if e.Detected != "" {
			return fmt.Sprintf("file declared as %s but content is %s", e.MimeType, e.Detected)
		}
		return fmt.Sprintf("file type %s is not allowed", e.MimeType)
	default:
		if e.Err != nil {
			return "malformed file: " + e.Err.Error()
		}
		return "malformed file"
	}
}

func (e *FileError) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind: errors.Is(err, &FileError{Kind: TooLarge}).
func (e *FileError) Is(target error) bool {
	t, ok := target.(*FileError)
	return ok && t.Kind == e.Kind
}
