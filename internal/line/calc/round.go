package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// roundTo rounds x to places decimal places. The tie break works on the
// exact binary value of x and goes away from zero, as Number(x.toFixed(n))
// does: 450/23.53 gives 19.1, 30/24 gives 1.3, 2.675 gives 2.67.
func roundTo(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || places < 0 {
		return x
	}

	const prec = 512
	scaled := new(big.Float).SetPrec(prec).SetFloat64(math.Abs(x))
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled.Mul(scaled, new(big.Float).SetPrec(prec).SetInt(pow))

	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(prec).Sub(scaled, new(big.Float).SetPrec(prec).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if places > 0 {
		if len(digits) <= places {
			digits = strings.Repeat("0", places-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	}
	if x < 0 && n.Sign() != 0 {
		digits = "-" + digits
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return x
	}
	return v
}

func round1(x float64) float64 { return roundTo(x, 1) }

// roundHalfUp rounds to the nearest integer with ties toward +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// missing reports the zero/NaN inputs that mean "not entered".
func missing(x float64) bool {
	return x == 0 || math.IsNaN(x)
}
