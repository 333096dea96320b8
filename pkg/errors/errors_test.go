package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidLabel, "label %q is bad", "x")
	want := `INVALID_LABEL: label "x" is bad`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeRenderBackend, cause, "render %s", "png")

	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() does not reach the cause")
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeNodeNotAttached, "detached")

	if !Is(err, ErrCodeNodeNotAttached) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeClusterOwned) {
		t.Error("Is() = true for mismatched code")
	}
	if Is(nil, ErrCodeNodeNotAttached) {
		t.Error("Is(nil) = true")
	}
	if Is(stderrors.New("plain"), ErrCodeNodeNotAttached) {
		t.Error("Is(plain error) = true")
	}

	if got := GetCode(err); got != ErrCodeNodeNotAttached {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeNodeNotAttached)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}

	// Codes survive fmt wrapping.
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeNodeNotAttached) {
		t.Error("Is() lost the code through fmt.Errorf wrapping")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: webp")
	if got := UserMessage(err); got != "invalid format: webp" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
