package domain

import "errors"

var (
	// ErrStorage indicates the backing store was unreadable, unwritable, or corrupt.
	ErrStorage = errors.New("storage failure")
	// ErrValidation indicates malformed input to a catalog or quiz operation.
	ErrValidation = errors.New("invalid input")
	// ErrSessionNotFound is returned for unknown, expired, or abandoned session handles.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionAlreadyGraded rejects a second submission against a graded session.
	ErrSessionAlreadyGraded = errors.New("quiz session already graded")
	// ErrEmptySelection means the composer found no questions for the requested scope.
	ErrEmptySelection = errors.New("no questions available for this selection")
	// ErrIndexOutOfRange indicates a question index outside the target bucket.
	ErrIndexOutOfRange = errors.New("question index out of range")
	// ErrCategoryNotFound indicates an unknown catalog category.
	ErrCategoryNotFound = errors.New("category not found")
)
