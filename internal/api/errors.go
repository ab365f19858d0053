package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTransport marks failures where no HTTP response was received.
	ErrTransport = errors.New("transport failure")
	// ErrRequestFailed marks responses whose status fell outside 200-299.
	ErrRequestFailed = errors.New("request failed")
	// ErrDecode marks 2xx responses whose body was not valid JSON.
	ErrDecode = errors.New("decode failure")
)

// StatusError is returned for any non-2xx response. The client does not
// interpret particular codes.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
	if m := e.Message(); m != "" {
		msg += ": " + m
	}
	return msg
}

// Message returns the server's "message" or "error" field when the body is a
// JSON object carrying one.
func (e *StatusError) Message() string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRequestFailed
}

// StatusCode reports the HTTP status carried by err, if any. Transport and
// decode failures report false.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
