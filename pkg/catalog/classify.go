package catalog

import (
	"fmt"
	"net/http"
)

// statusError is the cause attached to failures the server reported
// through a non-success status.
type statusError struct {
	method     string
	url        string
	statusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s",
		e.method, e.url, e.statusCode, http.StatusText(e.statusCode))
}

// classify turns a failed exchange into an *Error. It is the only place
// that decides between API and validation errors, and it does not depend
// on which operation failed.
//
// status is 0 when no response was received; body is the raw response
// body (possibly empty); cause is the transport failure or a statusError.
func classify(status int, body []byte, cause error) *Error {
	if status == 0 {
		return &Error{
			Kind:    KindAPI,
			Message: describe(cause),
			Err:     cause,
		}
	}

	// An unreadable body counts as an empty envelope.
	envelope := map[string]Value{}
	if parsed, err := ParseValue(body); err == nil {
		if fields, ok := parsed.AsObject(); ok {
			envelope = fields
		}
	}

	message, hasMessage := envelopeMessage(envelope)

	if status == StatusValidation {
		if fields, ok := envelopeFieldErrors(envelope); ok {
			if !hasMessage {
				message = DefaultValidationMessage
			}

			return &Error{
				Kind:       KindValidation,
				Message:    message,
				StatusCode: status,
				Fields:     fields,
				Err:        cause,
			}
		}
	}

	if hasMessage {
		return &Error{
			Kind:       KindAPI,
			Message:    message,
			StatusCode: status,
			Err:        cause,
		}
	}

	return &Error{
		Kind:       KindAPI,
		Message:    describe(cause),
		StatusCode: status,
		Err:        cause,
	}
}

// envelopeMessage reads the "message" field. A null message counts as absent.
func envelopeMessage(envelope map[string]Value) (string, bool) {
	raw, ok := envelope["message"]
	if !ok || raw.IsNull() {
		return "", false
	}

	if s, ok := raw.AsString(); ok {
		return s, true
	}

	return renderScalar(raw), true
}

// envelopeFieldErrors reads the "errors" field when it is an object of
// field names to a message or a list of messages.
func envelopeFieldErrors(envelope map[string]Value) (map[string][]string, bool) {
	raw, ok := envelope["errors"]
	if !ok {
		return nil, false
	}

	obj, ok := raw.AsObject()
	if !ok {
		return nil, false
	}

	fields := make(map[string][]string, len(obj))
	for field, messages := range obj {
		if items, ok := messages.AsArray(); ok {
			list := make([]string, 0, len(items))
			for _, item := range items {
				list = append(list, renderScalar(item))
			}
			fields[field] = list
			continue
		}

		fields[field] = []string{renderScalar(messages)}
	}

	return fields, true
}

func renderScalar(v Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}

	data, err := v.MarshalJSON()
	if err != nil {
		return ""
	}

	return string(data)
}

func describe(cause error) string {
	if cause == nil {
		return "unknown error"
	}

	return cause.Error()
}
