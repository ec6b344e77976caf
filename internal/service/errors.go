package service

import "errors"

// Pipeline error taxonomy. Parse-level errors (ErrInvalidTestFormat,
// ErrInsufficientQuestions) are absorbed by the sample-document fallback and
// never cross the service boundary; ErrGenerationFailed only escapes in strict
// mode; everything else maps to 500 at the controller.
var (
	ErrGenerationFailed      = errors.New("generation service failed")
	ErrInvalidTestFormat     = errors.New("generated document has invalid format")
	ErrInsufficientQuestions = errors.New("generated document has too few questions")
	ErrNoQuestionsFound      = errors.New("no usable questions after normalization")
	ErrTestNotFound          = errors.New("test not found")
	ErrTestNotPublished      = errors.New("test is not published")
)
