package primeday

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime(t *testing.T) {
	primes := map[int]bool{}
	for _, p := range []int{3, 5, 7, 11, 13, 17, 19, 23, 29, 31} {
		primes[p] = true
	}
	for n := -1; n <= 31; n++ {
		assert.Equal(t, primes[n], IsPrime(n), "n=%d", n)
	}
}

func TestCheck(t *testing.T) {
	r, err := Check("02-02-2024")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Day)
	assert.False(t, r.Prime)
	assert.Equal(t, " 02-02-2024 is NOT a Prime Day.", r.Verdict())

	r, err = Check("02-03-2024")
	require.NoError(t, err)
	assert.Equal(t, 3, r.Day)
	assert.True(t, r.Prime)
	assert.Equal(t, " 02-03-2024 is a Prime Day!", r.Verdict())

	r, err = Check("12-31-1999")
	require.NoError(t, err)
	assert.True(t, r.Prime)
}

func TestCheckRejects(t *testing.T) {
	for _, in := range []string{"13-01-2024", "02-30-2024", "2024-02-03", "2-3-2024", "", "02/03/2024", "02-03-2024 "} {
		_, err := Check(in)
		assert.True(t, errors.Is(err, ErrInvalidFormat), "input %q", in)
	}
}
