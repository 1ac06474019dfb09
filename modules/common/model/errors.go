package model

import "fmt"

// ValidationError rejects a bad request before any pipeline work. 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ModelLoadError means a pipeline failed to initialize. 500, names the model.
type ModelLoadError struct {
	Model string
	Err   error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model %s: %v", e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// InferenceError means the generation call itself failed. 500.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed on %s: %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// EncodingError means frame-to-video conversion failed. 500, null video data.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("video encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
