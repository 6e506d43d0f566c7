package match

import (
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func TestBallPointsAndEdges(t *testing.T) {
	b := Ball{Pos: core.Vec2{X: 100, Y: 50}, Radius: 8}

	pts := BallPoints(b)
	if pts.N != (core.Vec2{X: 100, Y: 42}) || pts.S != (core.Vec2{X: 100, Y: 58}) {
		t.Errorf("N/S = %+v/%+v", pts.N, pts.S)
	}
	if pts.W != (core.Vec2{X: 92, Y: 50}) || pts.E != (core.Vec2{X: 108, Y: 50}) {
		t.Errorf("W/E = %+v/%+v", pts.W, pts.E)
	}

	e := BallEdges(b)
	want := Edges{North: 42, South: 58, West: 92, East: 108}
	if e != want {
		t.Errorf("BallEdges = %+v, want %+v", e, want)
	}
}

func TestFacingEdge(t *testing.T) {
	w := World{W: 800, H: 400}
	left := Paddle{Pos: core.Vec2{X: 20, Y: 160}, W: 10, H: 80}
	right := Paddle{Pos: core.Vec2{X: 770, Y: 160}, W: 10, H: 80}

	tests := []struct {
		name  string
		p     Paddle
		wantX float64
	}{
		{"left paddle faces east", left, 30},
		{"right paddle faces west", right, 770},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FacingEdge(tt.p, w)
			if f.X != tt.wantX {
				t.Errorf("X = %v, want %v", f.X, tt.wantX)
			}
			if f.Mid != (core.Vec2{X: tt.wantX, Y: 200}) {
				t.Errorf("Mid = %+v", f.Mid)
			}
			if f.Top.Y != 160 || f.Bottom.Y != 240 {
				t.Errorf("Top/Bottom = %v/%v, want 160/240", f.Top.Y, f.Bottom.Y)
			}
		})
	}
}

func TestHeadingOf(t *testing.T) {
	tests := []struct {
		v        core.Vec2
		want     Heading
		northish bool
		southish bool
	}{
		{core.Vec2{}, HeadingNone, false, false},
		{core.Vec2{Y: -1}, HeadingN, true, false},
		{core.Vec2{X: 3, Y: -2}, HeadingNE, true, false},
		{core.Vec2{X: 5}, HeadingE, false, false},
		{core.Vec2{X: 1, Y: 9}, HeadingSE, false, true},
		{core.Vec2{Y: 4}, HeadingS, false, true},
		{core.Vec2{X: -1, Y: 1}, HeadingSW, false, true},
		{core.Vec2{X: -2}, HeadingW, false, false},
		{core.Vec2{X: -1, Y: -1}, HeadingNW, true, false},
	}

	for _, tt := range tests {
		got := HeadingOf(tt.v)
		if got != tt.want {
			t.Errorf("HeadingOf(%+v) = %v, want %v", tt.v, got, tt.want)
		}
		if got.Northish() != tt.northish || got.Southish() != tt.southish {
			t.Errorf("%v: northish=%v southish=%v", got, got.Northish(), got.Southish())
		}
		if tt.want != HeadingNone && HeadingOf(got.Unit()) != got {
			t.Errorf("%v: Unit() round trip failed", got)
		}
	}
}
