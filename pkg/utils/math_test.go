package utils

import (
	"math"
	"testing"
)

func TestInnerProduct(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0.5, 0.5, 0}
	if got := InnerProduct(a, b); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("InnerProduct: got %v", got)
	}
	if got := InnerProduct(a, []float32{1, 2}); got != 0 {
		t.Errorf("mismatched lengths: got %v", got)
	}
	if got := InnerProduct(nil, nil); got != 0 {
		t.Errorf("empty: got %v", got)
	}
}

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	NormalizeL2(v)
	if math.Abs(L2Norm(v)-1.0) > 1e-6 {
		t.Errorf("norm after NormalizeL2: got %v", L2Norm(v))
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("normalized: got %v", v)
	}

	zero := []float32{0, 0, 0}
	NormalizeL2(zero)
	for _, x := range zero {
		if x != 0 {
			t.Errorf("zero vector changed: got %v", zero)
		}
	}
}
