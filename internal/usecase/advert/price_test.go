package advert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1.234,56", 123456},
		{"0,50", 50},
		{"0", 0},
		{"999.999,99", 99999999},
		{"12,3", 1230},
		{"45", 4500},
		{"  7,00  ", 700},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParsePriceRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1,234.56", "1.23,45", "01,00", "-5,00", "1.2345,00", "10,123"} {
		_, err := ParsePrice(in)
		require.ErrorIs(t, err, ErrInvalidPrice, in)
	}
}

func TestPriceRoundTrip(t *testing.T) {
	for _, display := range []string{"1.234,56", "0,50", "12,30", "999.999,99", "1.000.000,00", "7,00"} {
		cents, err := ParsePrice(display)
		require.NoError(t, err, display)
		require.Equal(t, display, FormatPrice(cents), display)
	}
}

func TestFormatPricePadsSmallValues(t *testing.T) {
	require.Equal(t, "0,05", FormatPrice(5))
	require.Equal(t, "0,50", FormatPrice(50))
	require.Equal(t, "5,00", FormatPrice(500))
}
