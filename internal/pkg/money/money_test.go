// internal/pkg/money/money_test.go
package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"24.99", 2499},
		{"0.05", 5},
		{"100", 10000},
		{"7.5", 750},
		{".99", 99},
		{"  12.00 ", 1200},
		{"-3.25", -325},
		{"19.999", 1999}, // extra digits truncated, not rounded
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := Parse(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "n/a", "12.3x", "1,200.00"} {
			_, err := Parse(in)
			assert.Error(t, err, "input %q", in)
		}
	})
}

func TestString(t *testing.T) {
	assert.Equal(t, "24.99", Cents(2499).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "100.00", Cents(10000).String())
	assert.Equal(t, "-3.25", Cents(-325).String())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not-a-price") })
}
