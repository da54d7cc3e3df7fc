package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec2SqrDistance(t *testing.T) {
	a := Vec2{1, 1}
	b := Vec2{4, 5}
	if got := a.SqrDistance(b); got != 25 {
		t.Errorf("Vec2.SqrDistance() = %v, want 25", got)
	}
}

func TestVec2Round(t *testing.T) {
	tests := []struct {
		in   Vec2
		x, y int
	}{
		{Vec2{0.4, -0.4}, 0, 0},
		{Vec2{0.5, -0.5}, 1, -1},
		{Vec2{239.9, -480.2}, 240, -480},
	}
	for _, tt := range tests {
		x, y := tt.in.Round()
		if x != tt.x || y != tt.y {
			t.Errorf("%v.Round() = (%d, %d), want (%d, %d)", tt.in, x, y, tt.x, tt.y)
		}
	}
}

func TestInverseLerp(t *testing.T) {
	tests := []struct {
		a, b, v, want float32
	}{
		{0, 10, 5, 0.5},
		{-1, 1, -1, 0},
		{-1, 1, 3, 1},
		{2, 2, 2, 0},
	}
	for _, tt := range tests {
		if got := InverseLerp(tt.a, tt.b, tt.v); got != tt.want {
			t.Errorf("InverseLerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.v, got, tt.want)
		}
	}
}
