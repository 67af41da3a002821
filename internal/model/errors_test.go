package model

import (
	"errors"
	"strings"
	"testing"
)

func TestAppError_Messages(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err      AppError
		contains string
	}{
		{&NotFoundError{ID: "com.test.app"}, "com.test.app"},
		{&PermissionDeniedError{Resource: "installed apps"}, "installed apps"},
		{&PermissionDeniedError{Resource: "installed apps", Details: "SecurityException"}, "SecurityException"},
		{&UnknownError{Message: "dumpsys failed", Cause: cause}, "dumpsys failed"},
		{&TimeoutError{Operation: "list"}, "list"},
	}

	for _, test := range tests {
		if !strings.Contains(test.err.Error(), test.contains) {
			t.Errorf("%T.Error() = %q, expected it to contain %q", test.err, test.err.Error(), test.contains)
		}
	}
}

func TestUnknownError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	var err error = &UnknownError{Message: "wrapped", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("expected UnknownError to unwrap to its cause")
	}
}
