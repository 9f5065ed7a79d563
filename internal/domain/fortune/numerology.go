package fortune

import "time"

// Numbers is the set every reduction lands in, in ascending order.
// Zero is also possible, but only for an all-zero sum.
var Numbers = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22}

// IsNumber reports whether n belongs to Numbers.
func IsNumber(n int) bool {
	return (n >= 1 && n <= 9) || n == 11 || n == 22
}

// CharToDigit maps a rune to its numerology value. Letters cycle through
// 1-9 (a=1 ... i=9, j=1 ...), ASCII digits keep their value and every
// other rune is worth 0.
func CharToDigit(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r-'a')%9 + 1
	case r >= 'A' && r <= 'Z':
		return int(r-'A')%9 + 1
	case r >= '0' && r <= '9':
		return int(r - '0')
	default:
		return 0
	}
}

// Reduce sums decimal digits until the value fits in one digit.
// 11 and 22 are returned untouched, but only when they are the input
// itself: a sum that passes through 11 on the way down (29 -> 11 -> 2)
// keeps reducing.
func Reduce(n int) int {
	if n == 11 || n == 22 {
		return n
	}
	for n > 9 {
		sum := 0
		for ; n > 0; n /= 10 {
			sum += n % 10
		}
		n = sum
	}
	return n
}

// BaseNumber is the reduced digit sum of every rune in s.
func BaseNumber(s string) int {
	sum := 0
	for _, r := range s {
		sum += CharToDigit(r)
	}
	return Reduce(sum)
}

// DateNumber is the reduced sum of the day, month and year of d,
// read in d's own location.
func DateNumber(d time.Time) int {
	return Reduce(d.Day() + int(d.Month()) + d.Year())
}

// FortuneNumber combines a base number with the date number.
func FortuneNumber(base, dateNumber int) int {
	return Reduce(base + dateNumber)
}
