// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrMissingToken reports that the bearer credential is absent. It is
// raised at client construction, before any request is built, whatever
// command was given.
var ErrMissingToken = errors.New("VERCEL_TOKEN is not set")

// Error is a non-success response from the remote API.
type Error struct {
	// StatusCode is the numeric HTTP status.
	StatusCode int
	// Status is the raw status line, e.g. "404 Not Found".
	Status string
	// Code is the vendor error code when the body carried one.
	Code string
	// Message is the nested error.message from the JSON body, empty when the
	// body was absent or malformed.
	Message string
}

// Error returns the remote message verbatim when one exists, else the raw
// status line. No wrapper text is added; what the remote said is what the
// user sees.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Status
}

// newError classifies a non-2xx response. The remote contract is a JSON
// object with a nested error.message/error.code pair; anything else falls
// back to the bare status line.
func newError(resp *http.Response, body []byte) *Error {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	e := &Error{
		StatusCode: resp.StatusCode,
		Status:     status,
	}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		e.Message = msg.String()
	}
	if code := gjson.GetBytes(body, "error.code"); code.Exists() {
		e.Code = code.String()
	}

	return e
}
