package model

import "testing"

func TestScreenStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   ScreenStatus
		expected bool
	}{
		{StatusIdle, false},
		{StatusLoading, true},
		{StatusReady, false},
		{StatusFailed, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("ScreenStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestScreenStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   ScreenStatus
		expected bool
	}{
		{StatusIdle, false},
		{StatusLoading, false},
		{StatusReady, true},
		{StatusFailed, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("ScreenStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
		if test.status.CanRetry() != test.expected {
			t.Errorf("ScreenStatus(%s).CanRetry() = %v, expected %v", test.status, test.status.CanRetry(), test.expected)
		}
	}
}

func TestScreenStatus_String(t *testing.T) {
	status := StatusLoading
	expected := "Loading"
	result := status.String()

	if result != expected {
		t.Errorf("ScreenStatus.String() = %s, expected %s", result, expected)
	}
}
