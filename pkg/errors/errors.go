package errors

import (
	stderrors "errors"
	"fmt"
)

// MalformedDataError reports a persisted blob that exists but cannot be decoded
// into the expected shape.
type MalformedDataError struct {
	Source  string
	Message string
	Err     error
}

// NewMalformedDataError constructs a MalformedDataError for the named source.
func NewMalformedDataError(source string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &MalformedDataError{Source: source, Message: message, Err: err}
}

func (e *MalformedDataError) Error() string {
	if e == nil {
		return ""
	}
	if e.Source != "" {
		return fmt.Sprintf("malformed data: %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("malformed data: %s", e.Message)
}

// Unwrap exposes the underlying decode error.
func (e *MalformedDataError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StorageError indicates the durable medium could not be read or written.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// NewStorageError constructs a StorageError for an operation against a key.
func NewStorageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FieldAssignmentError rejects a value of the wrong shape for a part.
type FieldAssignmentError struct {
	Part    string
	Message string
}

// NewFieldAssignmentError constructs a FieldAssignmentError.
func NewFieldAssignmentError(part, message string) error {
	return &FieldAssignmentError{Part: part, Message: message}
}

func (e *FieldAssignmentError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid field assignment: %s: %s", e.Part, e.Message)
}

// UnknownPartError reports a part identifier outside the registered set.
type UnknownPartError struct {
	Part string
}

// NewUnknownPartError constructs an UnknownPartError.
func NewUnknownPartError(part string) error {
	return &UnknownPartError{Part: part}
}

func (e *UnknownPartError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown part %q", e.Part)
}

// UnknownEntryError reports a catalog lookup for a value the catalog does not carry.
type UnknownEntryError struct {
	Value string
}

// NewUnknownEntryError constructs an UnknownEntryError.
func NewUnknownEntryError(value string) error {
	return &UnknownEntryError{Value: value}
}

func (e *UnknownEntryError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown catalog entry %q", e.Value)
}

// IsStorage reports whether err carries a StorageError.
func IsStorage(err error) bool {
	var target *StorageError
	return stderrors.As(err, &target)
}

// IsMalformed reports whether err carries a MalformedDataError.
func IsMalformed(err error) bool {
	var target *MalformedDataError
	return stderrors.As(err, &target)
}

// IsFieldAssignment reports whether err carries a FieldAssignmentError.
func IsFieldAssignment(err error) bool {
	var target *FieldAssignmentError
	return stderrors.As(err, &target)
}

// IsUnknownPart reports whether err carries an UnknownPartError.
func IsUnknownPart(err error) bool {
	var target *UnknownPartError
	return stderrors.As(err, &target)
}
