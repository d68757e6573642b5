package storage

import (
	"testing"
	"time"
)

func TestDurToInterval(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0 seconds"},
		{-time.Minute, "0 seconds"},
		{500 * time.Millisecond, "0 seconds"},
		{90 * time.Second, "90 seconds"},
		{168 * time.Hour, "604800 seconds"},
	}
	for _, tc := range cases {
		if got := durToInterval(tc.in); got != tc.want {
			t.Errorf("durToInterval(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
