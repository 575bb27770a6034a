package utils

import "testing"

func TestFormatRupees(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rs 0"},
		{500, "Rs 500"},
		{1000, "Rs 1,000"},
		{123456, "Rs 1,23,456"},
		{12345678, "Rs 1,23,45,678"},
		{-2500, "-Rs 2,500"},
	}
	for _, c := range cases {
		if got := FormatRupees(c.in); got != c.want {
			t.Fatalf("FormatRupees(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
