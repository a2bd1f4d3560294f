package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestGuardErrorMessage(t *testing.T) {
	err := New(ModelLoad, "model file missing", nil)
	want := "[MODEL_LOAD_ERROR] model file missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGuardErrorWrapsCause(t *testing.T) {
	cause := errors.New("unexpected token")
	err := New(Parse, "cannot parse ui/view.py", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Error() != "[PARSE_ERROR] cannot parse ui/view.py: unexpected token" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	testCases := []struct {
		err  error
		want ErrorCode
	}{
		{New(Parse, "bad file", nil), Parse},
		{fmt.Errorf("scan: %w", New(File, "unreadable", nil)), File},
		{errors.New("plain"), Internal},
	}

	for _, tc := range testCases {
		if got := CodeOf(tc.err); got != tc.want {
			t.Errorf("CodeOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestHasCode(t *testing.T) {
	err := Newf(ConfigInvalid, "workers must be positive, got %d", -1)
	if !HasCode(err, ConfigInvalid) {
		t.Error("expected HasCode(ConfigInvalid) to be true")
	}
	if HasCode(err, Parse) {
		t.Error("expected HasCode(Parse) to be false")
	}
	if HasCode(nil, ConfigInvalid) {
		t.Error("expected HasCode(nil, ...) to be false")
	}
}
