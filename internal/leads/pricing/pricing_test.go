package pricing

import "testing"

func TestFinalPrice_StandardMargin(t *testing.T) {
	if got := FinalPrice(180000, 25); got != 225000 {
		t.Fatalf("expected final price 225000, got %v", got)
	}
	if got := Profit(180000, 25); got != 45000 {
		t.Fatalf("expected profit 45000, got %v", got)
	}
}

func TestFinalPrice_ZeroMarginEqualsEstimate(t *testing.T) {
	if got := FinalPrice(42500, 0); got != 42500 {
		t.Fatalf("expected final price 42500, got %v", got)
	}
	if got := Profit(42500, 0); got != 0 {
		t.Fatalf("expected profit 0, got %v", got)
	}
}

func TestFinalPrice_RoundsToWholeEuros(t *testing.T) {
	// 1000 * 1.333 = 1333.0 exactly; 999 * 1.155 = 1153.845 rounds to 1154.
	if got := FinalPrice(999, 15.5); got != 1154 {
		t.Fatalf("expected final price 1154, got %v", got)
	}
}

func TestFinalPrice_NeverBelowEstimateForValidMargin(t *testing.T) {
	for _, margin := range []float64{0, 1, 20, 50, 100} {
		if got := FinalPrice(75000, margin); got < 75000 {
			t.Fatalf("final price %v below estimate for margin %v", got, margin)
		}
	}
}

func TestClampMargin(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-10, 0},
		{0, 0},
		{20, 20},
		{100, 100},
		{250, 100},
	}

	for _, tc := range cases {
		if got := ClampMargin(tc.in); got != tc.want {
			t.Fatalf("ClampMargin(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
