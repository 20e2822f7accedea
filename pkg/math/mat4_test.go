package math

import "testing"

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(85, 16.0/9.0, 0.1, 500)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}

	// A wider field of view shrinks the focal scale.
	wide := Perspective(95, 16.0/9.0, 0.1, 500)
	if wide[5] >= m[5] {
		t.Errorf("Perspective(95)[5] = %f, want < %f", wide[5], m[5])
	}
}

func TestLookAtMapsCenterOntoForwardAxis(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Up)

	got := m.TransformPoint(Vec3{0, 0, 0})
	if !ApproxEqual(got.X, 0, 1e-5) || !ApproxEqual(got.Y, 0, 1e-5) || !ApproxEqual(got.Z, -5, 1e-5) {
		t.Errorf("LookAt center in view space = %v, want (0, 0, -5)", got)
	}
}
