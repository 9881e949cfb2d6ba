// Package errors defines the matching engine's error taxonomy. Normalization
// and scoring are total and never produce errors; everything here originates
// in identity resolution or persistence I/O.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
)

// InvalidHintError means an identity hint could not be parsed into a URL,
// domain-like string, or free text. Callers should ask for a corrected hint.
type InvalidHintError struct {
	Hint string
}

func NewInvalidHintError(hint string) *InvalidHintError {
	return &InvalidHintError{Hint: hint}
}

func (e *InvalidHintError) Error() string {
	return fmt.Sprintf("identity hint %q cannot be parsed as a URL or domain", e.Hint)
}

func (e *InvalidHintError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusBadRequest, e.Error()).AddMetaValue("hint", e.Hint)
}

func IsInvalidHintError(err error) bool {
	var target *InvalidHintError
	return errors.As(err, &target)
}

// ResolutionAmbiguousError is returned in strict resolution mode when a
// resolution step matched more than one record. The default mode resolves
// ambiguity deterministically instead.
type ResolutionAmbiguousError struct {
	Hint         string
	CandidateIDs []string
}

func (e *ResolutionAmbiguousError) Error() string {
	return fmt.Sprintf("identity hint %q matched %d records", e.Hint, len(e.CandidateIDs))
}

func (e *ResolutionAmbiguousError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusConflict, e.Error()).AddMetaValue("candidate_ids", e.CandidateIDs)
}

func IsResolutionAmbiguousError(err error) bool {
	var target *ResolutionAmbiguousError
	return errors.As(err, &target)
}

// PersistenceIOError wraps a data store failure. The engine never retries;
// retry policy belongs to the caller.
type PersistenceIOError struct {
	Op  string
	Err error
}

func NewPersistenceIOError(op string, err error) *PersistenceIOError {
	return &PersistenceIOError{Op: op, Err: err}
}

func (e *PersistenceIOError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceIOError) Unwrap() error {
	return e.Err
}

func (e *PersistenceIOError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("persistence failure during %s", e.Op))
}

func IsPersistenceIOError(err error) bool {
	var target *PersistenceIOError
	return errors.As(err, &target)
}

// NotFoundError means a share token was never issued.
type NotFoundError struct {
	Token string
}

func NewNotFoundError(token string) *NotFoundError {
	return &NotFoundError{Token: token}
}

func (e *NotFoundError) Error() string {
	return "share token not found"
}

func (e *NotFoundError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusNotFound, e.Error())
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ExpiredError means a share token existed but its expiry has passed. Kept
// distinct from NotFoundError so callers can tell the two apart.
type ExpiredError struct {
	Token     string
	ExpiredAt time.Time
}

func NewExpiredError(token string, expiredAt time.Time) *ExpiredError {
	return &ExpiredError{Token: token, ExpiredAt: expiredAt}
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("share token expired at %s", e.ExpiredAt.UTC().Format(time.RFC3339))
}

func (e *ExpiredError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusGone, e.Error())
}

func IsExpiredError(err error) bool {
	var target *ExpiredError
	return errors.As(err, &target)
}
