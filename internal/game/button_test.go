package game

import (
	"context"
	"math"
	"testing"
)

func TestButtonClick(t *testing.T) {
	tests := []struct {
		name  string
		steps [][4]float64 // x, y, down, up
		want  bool
	}{
		{"press and release inside", [][4]float64{{10, 10, 1, 0}, {12, 12, 0, 1}}, true},
		{"release outside", [][4]float64{{10, 10, 1, 0}, {500, 10, 0, 1}}, false},
		{"press outside", [][4]float64{{500, 10, 1, 0}, {10, 10, 0, 1}}, false},
		{"hover only", [][4]float64{{10, 10, 0, 0}, {10, 10, 0, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newButton(0, 0, 100, 40)
			var clicked bool
			for _, st := range tt.steps {
				clicked = b.update(st[0], st[1], st[2] == 1, st[3] == 1)
			}
			if clicked != tt.want {
				t.Errorf("clicked = %v, want %v", clicked, tt.want)
			}
			if b.pressed {
				t.Error("button still pressed after release")
			}
		})
	}
}

func TestButtonPulseSettles(t *testing.T) {
	b := newButton(0, 0, 10, 10)
	b.kick()
	b.update(-1, -1, false, false)
	if b.scale() == 1 {
		t.Fatal("kick did not move the pulse")
	}
	for i := 0; i < 600; i++ {
		b.update(-1, -1, false, false)
	}
	if math.Abs(b.scale()-1) > 1e-3 {
		t.Errorf("scale = %v after settling, want 1", b.scale())
	}
}

type nopPlayer struct{}

func (nopPlayer) Toggle(context.Context) {}
func (nopPlayer) Pump() int              { return 0 }
func (nopPlayer) Save() bool             { return false }
