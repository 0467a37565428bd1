package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Machine error tags synthesized when the backend omits a code.
const (
	codeInternalServerError = "InternalServerError"
	codeUnknownError        = "UnknownError"
)

// Error is the canonical error envelope returned by the backend. Once
// produced by Normalize or NormalizeBody every field is populated, with
// best-effort defaults for anything the payload omitted.
type Error struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	ErrorText string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// RequestError is the failure raised for any backend response with a
// status of 400 or above. It captures enough of the response to
// normalize lazily and carries the normalized record once computed so
// repeated reads are free.
type RequestError struct {
	Status     int
	StatusText string
	URL        string

	// Body holds the raw response body (bounded). Payload holds the
	// decoded body when the response declared a JSON content type;
	// opaque bodies leave Payload nil and rely on NormalizeBody.
	Body    []byte
	Payload any

	// SessionExpired marks a 401 that should invalidate the local
	// session: a token was attached and the target was not an auth
	// endpoint. The HTTP layer additionally checks the current page
	// before redirecting.
	SessionExpired bool

	apiErr *Error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "api: request failed"
	}
	if e.apiErr != nil && e.apiErr.Message != "" {
		return fmt.Sprintf("api: %s: %s", e.URL, e.apiErr.Message)
	}
	text := e.StatusText
	if text == "" {
		text = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api: %s: status %d %s", e.URL, e.Status, text)
}

// attach caches the normalized record on the failure; subsequent
// Normalize calls return it by identity.
func (e *RequestError) attach(apiErr *Error) {
	if e != nil && apiErr != nil {
		e.apiErr = apiErr
	}
}

// Normalize converts a failure from the HTTP layer into the canonical
// Error record. It returns nil when err did not come from a backend
// response (network failures, timeouts, decode errors). It is a total
// function: for any transport failure it produces a fully populated
// record, falling back to defaults when the body is unreadable. Opaque
// bodies are not decoded here; use NormalizeBody for that.
func Normalize(err error) *Error {
	var re *RequestError
	if !errors.As(err, &re) || re == nil {
		return nil
	}
	if re.apiErr != nil {
		return re.apiErr
	}
	if apiErr, ok := errorFromValue(re.Payload, re); ok {
		return apiErr
	}
	return re.generic()
}

// NormalizeBody behaves like Normalize but additionally attempts to
// decode a raw (blob) body as JSON when no pre-decoded payload exists.
// Some deployments deliver error bodies as opaque binary even though
// the content is JSON text; this entry point recovers those. The
// caller is expected to attach the result to the failure so later
// Normalize calls reuse it.
func NormalizeBody(err error) *Error {
	var re *RequestError
	if !errors.As(err, &re) || re == nil {
		return nil
	}
	if re.apiErr != nil {
		return re.apiErr
	}
	if apiErr, ok := errorFromValue(re.Payload, re); ok {
		return apiErr
	}
	if re.Payload == nil && len(re.Body) > 0 {
		var parsed any
		if json.Unmarshal(re.Body, &parsed) == nil {
			if apiErr, ok := errorFromValue(parsed, re); ok {
				return apiErr
			}
		}
	}
	return re.generic()
}

// SessionExpired reports whether err is a 401 failure that should
// invalidate the persisted session (subject to the current-page guard
// applied by the HTTP layer).
func SessionExpired(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re != nil && re.SessionExpired
}

// ErrorMessage extracts a user-facing message from any error, falling
// back to the supplied default when no structured message is present.
func ErrorMessage(err error, fallback string) string {
	if apiErr := Normalize(err); apiErr != nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorFromValue applies the payload-shape rules: first the canonical
// envelope, then the legacy {message[,code]} shape. The boolean is
// false when neither matched.
func errorFromValue(value any, re *RequestError) (*Error, bool) {
	obj, ok := value.(map[string]any)
	if !ok || obj == nil {
		return nil, false
	}

	if apiErr, ok := canonicalError(obj); ok {
		if apiErr.Timestamp == "" {
			apiErr.Timestamp = nowTimestamp()
		}
		if apiErr.Path == "" {
			apiErr.Path = re.URL
		}
		return apiErr, true
	}

	// Legacy shape: older backend responses carried only a message and
	// sometimes a code.
	message, ok := obj["message"].(string)
	if !ok {
		return nil, false
	}
	code, _ := obj["code"].(string)
	if code == "" {
		code = defaultCode(re.Status)
	}
	return &Error{
		Timestamp: nowTimestamp(),
		Status:    re.Status,
		ErrorText: statusLabel(re.StatusText),
		Code:      code,
		Message:   message,
		Path:      re.URL,
	}, true
}

// canonicalError matches a decoded object against the canonical
// envelope: status number plus error/code/message strings.
func canonicalError(obj map[string]any) (*Error, bool) {
	status, ok := obj["status"].(float64)
	if !ok {
		return nil, false
	}
	errText, ok := obj["error"].(string)
	if !ok {
		return nil, false
	}
	code, ok := obj["code"].(string)
	if !ok {
		return nil, false
	}
	message, ok := obj["message"].(string)
	if !ok {
		return nil, false
	}
	apiErr := &Error{
		Status:    int(status),
		ErrorText: errText,
		Code:      code,
		Message:   message,
	}
	if ts, ok := obj["timestamp"].(string); ok {
		apiErr.Timestamp = ts
	}
	if path, ok := obj["path"].(string); ok {
		apiErr.Path = path
	}
	return apiErr, true
}

func (e *RequestError) generic() *Error {
	return &Error{
		Timestamp: nowTimestamp(),
		Status:    e.Status,
		ErrorText: statusLabel(e.StatusText),
		Code:      defaultCode(e.Status),
		Message:   "",
		Path:      e.URL,
	}
}

func defaultCode(status int) string {
	if status == http.StatusInternalServerError {
		return codeInternalServerError
	}
	return codeUnknownError
}

func statusLabel(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Error"
	}
	return text
}

func nowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
