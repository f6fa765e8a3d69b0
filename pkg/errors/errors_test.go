package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnsupportedFormat, "drawio cannot export %s", "webp")

	if err.Code != ErrCodeUnsupportedFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnsupportedFormat)
	}

	if err.Message != "drawio cannot export webp" {
		t.Errorf("Message = %v, want %v", err.Message, "drawio cannot export webp")
	}

	expected := "UNSUPPORTED_FORMAT: drawio cannot export webp"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeRendererFailed, cause, "dot failed")

	if err.Code != ErrCodeRendererFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRendererFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUsage, "test"),
			code:     ErrCodeUsage,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUsage, "test"),
			code:     ErrCodeRemoteResponse,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeUsage,
			expected: false,
		},
		{
			name:     "wrapped in fmt.Errorf",
			err:      fmt.Errorf("context: %w", New(ErrCodeRemoteResponse, "404")),
			code:     ErrCodeRemoteResponse,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"usage error", New(ErrCodeUsage, "raw images need --convert"), true},
		{"unsupported format", New(ErrCodeUnsupportedFormat, "no webp"), true},
		{"missing language", New(ErrCodeMissingLanguage, "no .wsd"), true},
		{"renderer failure", New(ErrCodeRendererFailed, "exit 1"), false},
		{"remote response", New(ErrCodeRemoteResponse, "404"), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.fatal {
				t.Errorf("IsFatal() = %v, want %v", got, tt.fatal)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "x")); got != ErrCodeInternal {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInternal)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeUsage, "need --convert")); got != "need --convert" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
