package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind is the failure classification of a non-2xx response.
type Kind int

const (
	// KindTransport is any status without a more specific meaning.
	KindTransport Kind = iota

	// KindValidation is a 400 carrying a structured validation payload.
	KindValidation

	// KindBadRequest is a 400 without structured errors.
	KindBadRequest

	// KindUnauthorized is a 401.
	KindUnauthorized

	// KindNotFound is a 404.
	KindNotFound

	// KindServer is a 500.
	KindServer
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	default:
		return "transport"
	}
}

// Error is the classified failure surfaced by the transport pipeline.
// Messages is populated for validation failures only; Body carries the
// raw response payload for the other kinds.
type Error struct {
	Kind     Kind
	Status   int
	Messages []string
	Body     string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages, "; "))
	case KindBadRequest:
		return fmt.Sprintf("bad request: %s", e.Body)
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindServer:
		return fmt.Sprintf("server error: %s", e.Body)
	default:
		return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
	}
}

// AsError unwraps err into a classified *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNotFound reports whether err classifies as a 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindNotFound
}

// IsUnauthorized reports whether err classifies as a 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindUnauthorized
}

// IsValidation reports whether err carries itemized validation messages.
func IsValidation(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindValidation
}

// Classify maps a response status and body to a tagged failure. It is a
// pure function of its inputs; side effects (navigation, session error
// state) belong to the pipeline.
func Classify(status int, body []byte) *Error {
	switch status {
	case 400:
		if messages, ok := flattenValidationErrors(body); ok {
			return &Error{Kind: KindValidation, Status: status, Messages: messages}
		}
		return &Error{Kind: KindBadRequest, Status: status, Body: string(body)}
	case 401:
		return &Error{Kind: KindUnauthorized, Status: status, Body: string(body)}
	case 404:
		return &Error{Kind: KindNotFound, Status: status, Body: string(body)}
	case 500:
		return &Error{Kind: KindServer, Status: status, Body: string(body)}
	default:
		return &Error{Kind: KindTransport, Status: status, Body: string(body)}
	}
}

// flattenValidationErrors extracts the per-field message arrays from a
// payload shaped like {"errors": {"field": ["msg", ...], ...}} and
// flattens them into one list, preserving the field order of the
// document. encoding/json maps lose that order, so the body is walked
// with a token decoder instead.
func flattenValidationErrors(body []byte) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}

		if key != "errors" {
			// Skip the value of any other top-level field.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, false
			}
			continue
		}

		return flattenErrorFields(dec)
	}

	return nil, false
}

// flattenErrorFields consumes the {"field": ["msg", ...]} object the
// decoder is positioned at and returns the messages in document order.
func flattenErrorFields(dec *json.Decoder) ([]string, bool) {
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	var messages []string
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false
		}

		var fieldMessages []string
		if err := dec.Decode(&fieldMessages); err != nil {
			return nil, false
		}
		messages = append(messages, fieldMessages...)
	}

	if _, err := dec.Token(); err != nil {
		return nil, false
	}

	return messages, len(messages) > 0
}
