/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package flasharray

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// BaseError defines the common error reporting struct for all other errors
// defined in this package.
type BaseError struct {
	message string
}

// Error implements the error interface for all structures that are derived
// from this one.
func (e BaseError) Error() string {
	return e.message
}

// APIError is a single error element from the response error envelope.
type APIError struct {
	// Message is the human readable reason reported by the array.
	Message string `json:"message"`

	// Context identifies the request element the error applies to, if any.
	Context string `json:"context,omitempty"`
}

// errorEnvelope is the wire format of a non-success response body.
type errorEnvelope struct {
	Errors []APIError `json:"errors"`
}

// ErrUnexpectedResponseCode is returned for any response status outside the
// expected set for a request.  The remote error text, when present, is
// surfaced verbatim through Error().
type ErrUnexpectedResponseCode struct {
	BaseError
	URL      string
	Method   string
	Expected []int
	Actual   int
	Body     []byte
	Errors   []APIError
}

// ErrDefault400 is the default error for status code 400 responses.  The
// array reports both validation failures and missing resources as 400s so
// callers generally need to inspect the message.
type ErrDefault400 struct {
	ErrUnexpectedResponseCode
}

// ErrDefault401 is the default error for status code 401 responses.
type ErrDefault401 struct {
	ErrUnexpectedResponseCode
}

// ErrDefault403 is the default error for status code 403 responses.
type ErrDefault403 struct {
	ErrUnexpectedResponseCode
}

// ErrDefault404 is the default error for status code 404 responses.
type ErrDefault404 struct {
	ErrUnexpectedResponseCode
}

// ErrDefault500 is the default error for status code 500 responses.
type ErrDefault500 struct {
	ErrUnexpectedResponseCode
}

// ErrDefault503 is the default error for status code 503 responses.
type ErrDefault503 struct {
	ErrUnexpectedResponseCode
}

// ErrAuthenticationFailed is returned when a login exchange does not yield a
// usable session.
type ErrAuthenticationFailed struct {
	BaseError
}

// ErrVersionNotSupported is returned when version negotiation cannot find a
// mutually supported REST version.
type ErrVersionNotSupported struct {
	BaseError
	Requested string
}

// ErrResourceNotFound is returned by resource subpackages when a query for a
// named resource completes successfully but matches nothing.  It exists so
// that callers can probe for existence without treating errors as sentinels.
type ErrResourceNotFound struct {
	BaseError
	Name string
}

// NewResourceNotFound builds the not-found error for a named resource.
func NewResourceNotFound(name string) ErrResourceNotFound {
	return ErrResourceNotFound{
		BaseError: BaseError{message: fmt.Sprintf("resource %q was not found", name)},
		Name:      name,
	}
}

// IsNotFound reports whether an error represents a missing resource, either
// as an explicit not-found result or as the array's 400/404 rejection of an
// unknown name.
func IsNotFound(err error) bool {
	switch err.(type) {
	case ErrResourceNotFound, *ErrResourceNotFound:
		return true
	case ErrDefault404, *ErrDefault404:
		return true
	}
	return false
}

// errorFromResponse converts a non-success response into the typed error for
// its status code.  The response body is consumed.
func errorFromResponse(method string, url string, expected []int, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	base := ErrUnexpectedResponseCode{
		URL:      url,
		Method:   method,
		Expected: expected,
		Actual:   resp.StatusCode,
		Body:     body,
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		base.Errors = envelope.Errors
	}

	reason := fmt.Sprintf("unexpected status code %d from %s %s", resp.StatusCode, method, url)
	if len(base.Errors) > 0 && base.Errors[0].Message != "" {
		reason = fmt.Sprintf("%s: %s", reason, base.Errors[0].Message)
	}
	base.message = reason

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return ErrDefault400{base}
	case http.StatusUnauthorized:
		return ErrDefault401{base}
	case http.StatusForbidden:
		return ErrDefault403{base}
	case http.StatusNotFound:
		return ErrDefault404{base}
	case http.StatusInternalServerError:
		return ErrDefault500{base}
	case http.StatusServiceUnavailable:
		return ErrDefault503{base}
	}

	return base
}
