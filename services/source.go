package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/brendanxryan/entitlemate-backend/models"
)

// Source returns the raw rows of the entitlement sheet.
type Source interface {
	Fetch(ctx context.Context) ([]models.RawRow, error)
}

var (
	ErrSourceUnavailable = errors.New("entitlement source unavailable")
	ErrSourceStatus      = errors.New("entitlement source returned an error status")
	ErrSourceDecode      = errors.New("entitlement source returned malformed data")
)

// LoadErrorKind classifies a failed load for the view layer.
type LoadErrorKind string

const (
	LoadErrorUnavailable LoadErrorKind = "unavailable"
	LoadErrorStatus      LoadErrorKind = "status"
	LoadErrorDecode      LoadErrorKind = "decode"
	LoadErrorCanceled    LoadErrorKind = "canceled"
)

// LoadError is returned by Loader.Load when the dataset could not be read.
type LoadError struct {
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load entitlements (%s): %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Failure converts the error into the state shown to the page.
func (e *LoadError) Failure() *models.LoadFailure {
	msg := "Entitlements could not be loaded. Please try again later."
	switch e.Kind {
	case LoadErrorStatus:
		msg = "The entitlement sheet returned an error."
	case LoadErrorDecode:
		msg = "The entitlement sheet returned data we could not read."
	case LoadErrorCanceled:
		msg = "Loading was cancelled."
	}
	return &models.LoadFailure{Kind: string(e.Kind), Message: msg}
}

// classifyLoadError maps a source error onto a LoadError.
func classifyLoadError(err error) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	switch {
	case errors.Is(err, context.Canceled):
		return &LoadError{Kind: LoadErrorCanceled, Err: err}
	case errors.Is(err, ErrSourceStatus):
		return &LoadError{Kind: LoadErrorStatus, Err: err}
	case errors.Is(err, ErrSourceDecode):
		return &LoadError{Kind: LoadErrorDecode, Err: err}
	default:
		return &LoadError{Kind: LoadErrorUnavailable, Err: err}
	}
}
