package scanner

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{name: "https url", target: "https://example.com", wantErr: false},
		{name: "http url", target: "http://example.com/path?q=1", wantErr: false},
		{name: "missing scheme", target: "example.com", wantErr: true},
		{name: "wrong scheme", target: "ftp://example.com", wantErr: true},
		{name: "scheme only", target: "https://", wantErr: true},
		{name: "empty", target: "", wantErr: true},
		{name: "whitespace", target: "   ", wantErr: true},
		{name: "garbage", target: "http://[::bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.wantErr && err == nil {
				t.Fatalf("ValidateTarget(%q) expected error, got nil", tt.target)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ValidateTarget(%q) unexpected error: %v", tt.target, err)
			}
			if tt.wantErr {
				var invalid *InvalidTargetError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected *InvalidTargetError, got %T", err)
				}
			}
		})
	}
}

func TestInvalidTargetErrorMessage(t *testing.T) {
	err := &InvalidTargetError{Target: "example.com", Reason: "URL must start with http:// or https://"}
	want := `invalid target "example.com": URL must start with http:// or https://`
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}

func TestScanErrorMessageAndKind(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ScanError{Kind: KindTransport, Message: "could not reach https://api.webscan.dev/v1/scan: connection refused", Err: cause}

	if err.Error() != "could not reach https://api.webscan.dev/v1/scan: connection refused" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected Unwrap to expose the cause")
	}
	if err.Timeout() {
		t.Fatal("transport error should not report as timeout")
	}

	timeoutErr := &ScanError{Kind: KindTimeout, Message: "the scan did not finish within 30s"}
	if !timeoutErr.Timeout() {
		t.Fatal("timeout error should report as timeout")
	}
}

func TestScanErrorAsTarget(t *testing.T) {
	var scanErr *ScanError
	wrapped := fmt.Errorf("scan example.com: %w", &ScanError{Kind: KindHTTP, StatusCode: 503, Message: "HTTP 503"})
	if !errors.As(wrapped, &scanErr) {
		t.Fatal("expected errors.As to find *ScanError")
	}
	if scanErr.StatusCode != 503 {
		t.Fatalf("expected status 503, got %d", scanErr.StatusCode)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindTransport, "transport"},
		{KindTimeout, "timeout"},
		{KindHTTP, "http"},
		{KindDecode, "decode"},
		{ErrorKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Fatalf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
