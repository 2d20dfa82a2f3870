package regret

import "testing"

func approxEqual(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func TestRegretMatchingAllNegativeIsUniform(t *testing.T) {
	got := RegretMatching([]float64{-1, -1, -1})
	want := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRegretMatchingAllZeroIsUniform(t *testing.T) {
	got := RegretMatching([]float64{0, 0, 0})
	want := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRegretMatchingMixed(t *testing.T) {
	got := RegretMatching([]float64{2, 0, 6})
	want := []float64{0.25, 0.0, 0.75}
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}

	sum := 0.0
	for _, p := range got {
		if p < 0 {
			t.Errorf("policy has negative probability: %v", got)
		}
		sum += p
	}
	if d := sum - 1.0; d > 1e-9 || d < -1e-9 {
		t.Errorf("policy does not sum to 1: %v", got)
	}
}

func TestAverageStrategyNearZeroIsUniform(t *testing.T) {
	got := AverageStrategy([]float64{1e-9, 1e-9}, 2)
	want := []float64{0.5, 0.5}
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAverageStrategyAbsentRecordIsUniform(t *testing.T) {
	got := AverageStrategy(nil, 3)
	want := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAverageStrategyNormalizes(t *testing.T) {
	got := AverageStrategy([]float64{1, 3}, 2)
	want := []float64{0.25, 0.75}
	if !approxEqual(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}
