package scanner

import (
	"fmt"
	"net/url"
	"strings"
)

// ErrorKind says which stage of a scan call failed. Callers rarely branch
// on it; the CLI only needs the message, but tests and embedders can.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindTimeout
	KindHTTP
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// ScanError is the single error type every scan or report call failure
// normalizes to. Message is always safe to show a user.
type ScanError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ScanError) Error() string {
	return e.Message
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call was aborted by the client-side deadline.
func (e *ScanError) Timeout() bool {
	return e.Kind == KindTimeout
}

// InvalidTargetError rejects a target before any network call is made.
type InvalidTargetError struct {
	Target string
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: %s", e.Target, e.Reason)
}

// ValidateTarget checks that raw is an absolute http or https URL with a
// host. Anything else is rejected here so the caller can print guidance
// instead of burning a network round trip.
func ValidateTarget(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &InvalidTargetError{Target: raw, Reason: "empty URL"}
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return &InvalidTargetError{Target: raw, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidTargetError{Target: raw, Reason: "URL must start with http:// or https://"}
	}
	if u.Host == "" {
		return &InvalidTargetError{Target: raw, Reason: "missing host"}
	}
	return nil
}
