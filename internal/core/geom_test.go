package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 3, Y: 4}

	if got := v.Len(); got != 5 {
		t.Errorf("Len() = %f, expected 5", got)
	}
	if got := v.Add(Vec2{X: 1, Y: -1}); got != (Vec2{X: 4, Y: 3}) {
		t.Errorf("Add() = %v, expected {4 3}", got)
	}
	if got := v.Scale(0.5); got != (Vec2{X: 1.5, Y: 2}) {
		t.Errorf("Scale() = %v, expected {1.5 2}", got)
	}
}

func TestSign(t *testing.T) {
	if Sign(-2.5) != -1 || Sign(0) != 0 || Sign(math.SmallestNonzeroFloat64) != 1 {
		t.Error("Sign() returned an unexpected value")
	}
}

func TestPlayerID(t *testing.T) {
	if Player1.Opponent() != Player2 || Player2.Opponent() != Player1 {
		t.Error("Opponent() should swap sides")
	}
	if NoPlayer.Opponent() != NoPlayer {
		t.Error("NoPlayer should have no opponent")
	}
	if Player1.Index() != 0 || Player2.Index() != 1 || NoPlayer.Index() != -1 {
		t.Error("Index() returned an unexpected slot")
	}
}
