// Package primeday reports whether the day-of-month of a date is prime.
package primeday

import (
	"errors"
	"fmt"
	"time"
)

// Layout is MM-DD-YYYY, zero padded
const Layout = "01-02-2006"

var ErrInvalidFormat = errors.New("invalid date format")

type Result struct {
	Date  string
	Day   int
	Prime bool
}

// IsPrime uses trial division. Values up to and including 2 are not prime
// here, which keeps the 2nd of the month out of the prime days.
func IsPrime(n int) bool {
	if n <= 2 {
		return false
	}
	for i := 2; i < n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func Check(date string) (Result, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidFormat, date)
	}
	day := t.Day()
	return Result{Date: date, Day: day, Prime: IsPrime(day)}, nil
}

// Verdict is the console line for a result
func (r Result) Verdict() string {
	if r.Prime {
		return fmt.Sprintf(" %s is a Prime Day!", r.Date)
	}
	return fmt.Sprintf(" %s is NOT a Prime Day.", r.Date)
}
