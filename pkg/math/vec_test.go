package math

import (
	"errors"
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{3, 4, 5}
	got := a.Add(b)
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	inputs := []Vec3{
		{3, 4, 0},
		{2, 0, 0},
		{-0.001, 0.002, 0.0005},
		{1e4, -3e4, 2e4},
	}
	for _, v := range inputs {
		l := v.Normalize().Length()
		if l < 1-1e-5 || l > 1+1e-5 {
			t.Errorf("Vec3%v.Normalize().Length() = %v, want ~1", v, l)
		}
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero vector", got)
	}
	if _, err := (Vec3{}).NormalizeChecked(); !errors.Is(err, ErrZeroLength) {
		t.Errorf("NormalizeChecked() error = %v, want ErrZeroLength", err)
	}
	n, err := Vec3{0, 0, 5}.NormalizeChecked()
	if err != nil {
		t.Fatalf("NormalizeChecked() unexpected error: %v", err)
	}
	if n != (Vec3{0, 0, 1}) {
		t.Errorf("NormalizeChecked() = %v, want (0, 0, 1)", n)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := Cross(x, y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
	if d := Dot(got, x); d != 0 {
		t.Errorf("cross product should be orthogonal to its inputs, dot = %v", d)
	}
}
