package main

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jwaldner/bsm/bsm_lib/normal"
	"github.com/jwaldner/bsm/bsm_lib/option"
)

const tolerance = 1e-6

type check struct {
	name     string
	got      float64
	expected float64
}

// Compare the kernel against gonum's normal distribution and textbook table values
func main() {
	fmt.Println("🎯 Testing CDF Accuracy Against Reference Values")
	fmt.Println("================================================")

	var checks []check
	for _, x := range []float64{-3, -1.96, -1, -0.1, 0, 0.1, 1, 1.96, 3} {
		checks = append(checks,
			check{fmt.Sprintf("Phi(%+.2f)", x), normal.CDF(x, 0), distuv.UnitNormal.CDF(x)},
			check{fmt.Sprintf("phi(%+.2f)", x), normal.CDF(x, 1), distuv.UnitNormal.Prob(x)},
		)
	}

	// At-the-money put: f = 100, s = 0.2, k = -100 gives m = 0.1
	f, s, k := 100.0, 0.2, -100.0
	m := option.Moneyness(f, s, -k)
	checks = append(checks,
		check{"moneyness", m, 0.1},
		check{"put value", option.Value(f, s, k), 100*distuv.UnitNormal.CDF(0.1) - 100*distuv.UnitNormal.CDF(-0.1)},
		check{"put delta", option.Delta(f, s, k), -distuv.UnitNormal.CDF(-0.1)},
		check{"call value", option.Value(f, s, -k), 100*distuv.UnitNormal.CDF(0.1) - 100*distuv.UnitNormal.CDF(-0.1)},
		check{"call delta", option.Delta(f, s, -k), distuv.UnitNormal.CDF(0.1)},
	)

	fmt.Printf("📊 Input Parameters:\n")
	fmt.Printf("   Forward (f): %.2f\n", f)
	fmt.Printf("   Total volatility (s): %.4f\n", s)
	fmt.Printf("   Signed strike (k): %.2f\n", k)
	fmt.Println()

	failed := 0
	fmt.Printf("🔬 Calculation Results:\n")
	for _, c := range checks {
		diff := math.Abs(c.got - c.expected)
		status := "✅"
		if !(diff <= tolerance) {
			status = "❌"
			failed++
		}
		fmt.Printf("   %s %-12s %14.10f (expected %14.10f, diff %.2e)\n", status, c.name, c.got, c.expected, diff)
	}
	fmt.Println()

	// Higher derivatives are documented as unsupported
	if math.IsNaN(normal.CDF(0.5, 2)) {
		fmt.Println("ℹ️  CDF order 2 returns NaN (unsupported, as documented)")
	} else {
		fmt.Println("❌ CDF order 2 should return NaN")
		failed++
	}

	if failed > 0 {
		fmt.Printf("⚠️  NEEDS FURTHER IMPROVEMENT: %d of %d checks exceed ±%.0e\n", failed, len(checks)+1, tolerance)
		os.Exit(1)
	}
	fmt.Printf("✅ ACCURACY CONFIRMED: all %d checks within ±%.0e\n", len(checks)+1, tolerance)
}
