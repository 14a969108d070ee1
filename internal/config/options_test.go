package config

import (
	"io"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	o, err := Parse(nil, "/tmp/state.json", io.Discard)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.StatePath != "/tmp/state.json" {
		t.Errorf("StatePath = %q", o.StatePath)
	}
	if !o.Loop {
		t.Error("Loop should default to true")
	}
	if o.Autoplay || o.Pick || o.Overlay {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "track flag",
			args: []string{"-track", "song.mp3", "-autoplay"},
			want: Options{Track: "song.mp3", Autoplay: true, Loop: true, StatePath: "s"},
		},
		{
			name: "positional track",
			args: []string{"-loop=false", "-state", "", "song.flac"},
			want: Options{Track: "song.flac"},
		},
		{
			name: "overlay and pick",
			args: []string{"-overlay", "-pick"},
			want: Options{Overlay: true, Pick: true, Loop: true, StatePath: "s"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args, "s", io.Discard)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"-nope"}, "", io.Discard); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}
