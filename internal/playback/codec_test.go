package playback

import (
	"context"
	"testing"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{" 1\n", true},
		{"0", false},
		{"", false},
		{"yes", false},
		{"2", false},
	}
	for _, tt := range tests {
		if got := ParseIntent(tt.in); got != tt.want {
			t.Errorf("ParseIntent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !ParseIntent(FormatIntent(true)) || ParseIntent(FormatIntent(false)) {
		t.Error("FormatIntent does not match ParseIntent")
	}
}

func TestParseElapsed(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"NaN", 0},
		{"+Inf", 0},
	}
	for _, tt := range tests {
		if got := ParseElapsed(tt.in); got != tt.want {
			t.Errorf("ParseElapsed(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := ParseElapsed(FormatElapsed(123.456)); got != 123.456 {
		t.Errorf("round trip = %v", got)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Stopped:          "stopped",
		AttemptingResume: "attempting-resume",
		Playing:          "playing",
		PlayRefused:      "play-refused",
		State(42):        "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestUserGestureMark(t *testing.T) {
	ctx := context.Background()
	if IsUserGesture(ctx) {
		t.Error("plain context reported as gesture")
	}
	if !IsUserGesture(WithUserGesture(ctx)) {
		t.Error("marked context not reported as gesture")
	}
}
