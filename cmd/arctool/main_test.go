package main

import (
	"testing"

	"github.com/Faultbox/hookshot/pkg/math"
)

func TestVecFlagSet(t *testing.T) {
	tests := []struct {
		in      string
		want    math.Vec3
		wantErr bool
	}{
		{"1,2,3", math.Vec3{X: 1, Y: 2, Z: 3}, false},
		{" -1.5, 0 ,2.25", math.Vec3{X: -1.5, Z: 2.25}, false},
		{"1,2", math.Vec3{}, true},
		{"1,2,3,4", math.Vec3{}, true},
		{"a,b,c", math.Vec3{}, true},
	}

	for _, tt := range tests {
		var f vecFlag
		err := f.Set(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && f.v != tt.want {
			t.Errorf("Set(%q) = %v, want %v", tt.in, f.v, tt.want)
		}
	}
}

func TestVecFlagString(t *testing.T) {
	f := vecFlag{v: math.Vec3{X: 1, Y: 2.5, Z: -3}}
	if got := f.String(); got != "1,2.5,-3" {
		t.Errorf("String() = %q, want %q", got, "1,2.5,-3")
	}
}
