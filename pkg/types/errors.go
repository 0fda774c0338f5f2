package types

import (
	"errors"
	"fmt"
)

// Error represents a failure while editing the project tree
type Error struct {
	Kind    ErrorKind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel for the error's kind, so callers can write
// errors.Is(err, types.ErrMissingFile).
func (e *Error) Is(target error) bool {
	s, ok := target.(*sentinel)
	return ok && s.kind == e.Kind
}

type ErrorKind int

const (
	MissingFile ErrorKind = iota
	MalformedDocument
	FileExists
	SourceNotFound
	ParseError
	InvalidEdit
	InvalidVersion
	FileSystemError
	UsageError
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case MissingFile:
		return "MissingFile"
	case MalformedDocument:
		return "MalformedDocument"
	case FileExists:
		return "FileExists"
	case SourceNotFound:
		return "SourceNotFound"
	case ParseError:
		return "ParseError"
	case InvalidEdit:
		return "InvalidEdit"
	case InvalidVersion:
		return "InvalidVersion"
	case FileSystemError:
		return "FileSystemError"
	case UsageError:
		return "UsageError"
	default:
		return "Unknown"
	}
}

type sentinel struct {
	kind ErrorKind
}

func (s *sentinel) Error() string { return s.kind.String() }

var (
	ErrMissingFile       error = &sentinel{MissingFile}
	ErrMalformedDocument error = &sentinel{MalformedDocument}
	ErrFileExists        error = &sentinel{FileExists}
	ErrSourceNotFound    error = &sentinel{SourceNotFound}
	ErrParse             error = &sentinel{ParseError}
	ErrInvalidEdit       error = &sentinel{InvalidEdit}
	ErrInvalidVersion    error = &sentinel{InvalidVersion}
	ErrFileSystem        error = &sentinel{FileSystemError}
	ErrUsage             error = &sentinel{UsageError}
)

// NewError builds an *Error with a formatted message.
func NewError(kind ErrorKind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an *Error around cause.
func WrapError(kind ErrorKind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// ExitCode maps an error to a process exit code: 0 for nil, 2 for usage
// errors and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrUsage) {
		return 2
	}
	return 1
}
