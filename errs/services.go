package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Object Storage Errors
var (
	ErrStorage      = errors.New("storage operation failed")
	ErrUploadFailed = errors.New("upload failed")
	ErrDeleteFailed = errors.New("delete failed")
)

// Configuration & Environment Errors
var (
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// NewStorageError wraps a failure reported by the object-storage backend.
func NewStorageError(operation, key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorage,
		Details:    fmt.Sprintf("Failed to %s %s", operation, key),
		Cause:      cause,
	}
}

// NewUploadFailedError collapses any failure of the upload sequence into one 500.
func NewUploadFailedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUploadFailed,
		Message:    fmt.Sprintf("Upload failed: %s", causeMessage(cause)),
		Cause:      cause,
	}
}

func NewDeleteFailedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDeleteFailed,
		Message:    fmt.Sprintf("Failed to delete file: %s", causeMessage(cause)),
		Cause:      cause,
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

func causeMessage(cause error) string {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr.GetFullError()
	}
	if cause == nil {
		return "unknown error"
	}
	return cause.Error()
}

func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

func IsUploadFailedError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

func IsDeleteFailedError(err error) bool {
	return errors.Is(err, ErrDeleteFailed)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}

func IsEnvironmentVariableError(err error) bool {
	return errors.Is(err, ErrEnvironmentVariable)
}
