package utils

// ValidateIMEI reports whether candidate is a plausible 15-digit device
// identifier. OCR frequently misreads other long numbers (invoice references,
// acknowledgement numbers) as IMEIs, so on top of the Luhn check this rejects
// degenerate candidates: all digits identical, or mostly-sequential digit
// runs that look like test patterns.
func ValidateIMEI(candidate string) bool {
	if len(candidate) != 15 {
		return false
	}

	digits := make([]int, 15)
	for i, r := range candidate {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}

	if isDegenerate(digits) {
		return false
	}

	return luhnSum(digits)%10 == 0
}

// isDegenerate flags all-same-digit numbers and sequences where more than
// 60% of adjacent steps ascend by one (9 wrapping to 0 counts as ascending).
func isDegenerate(digits []int) bool {
	allSame := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return true
	}

	ascending := 0
	for i := 1; i < len(digits); i++ {
		if digits[i] == (digits[i-1]+1)%10 {
			ascending++
		}
	}
	steps := len(digits) - 1
	return float64(ascending) > 0.6*float64(steps)
}

// luhnSum computes the Luhn checksum total: every second digit from the
// rightmost is doubled, and doubled values above 9 have 9 subtracted.
func luhnSum(digits []int) int {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum
}
