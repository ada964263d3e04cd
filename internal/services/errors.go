package services

import "errors"

var (
	// ErrExtractionFailed means a source document could not be read or holds no text.
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrInputMissing means required text input, such as the job advert, is empty.
	ErrInputMissing = errors.New("required input missing")
	// ErrInvocationFailed means the model call failed or returned nothing usable.
	ErrInvocationFailed = errors.New("model invocation failed")
	// ErrUnsupportedFile means an uploaded file has an extension that is not accepted.
	ErrUnsupportedFile = errors.New("unsupported file type")
)
