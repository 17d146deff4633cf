package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateQuote(t *testing.T) {
	cases := []struct {
		name     string
		rate     int
		duration int
		want     Quote
	}{
		{"typical", 100, 2, Quote{LessonPrice: 200, PlatformFee: 20, Total: 220}},
		{"single hour", 150, 1, Quote{LessonPrice: 150, PlatformFee: 15, Total: 165}},
		{"fee rounds half up", 25, 1, Quote{LessonPrice: 25, PlatformFee: 3, Total: 28}},
		{"fee rounds down below half", 12, 1, Quote{LessonPrice: 12, PlatformFee: 1, Total: 13}},
		{"max duration", 75, 8, Quote{LessonPrice: 600, PlatformFee: 60, Total: 660}},
		{"zero rate", 0, 2, Quote{}},
		{"zero duration", 100, 0, Quote{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateQuote(tc.rate, tc.duration))
		})
	}
}

func TestCalculateQuoteInvariant(t *testing.T) {
	for rate := 0; rate <= 200; rate += 7 {
		for duration := 1; duration <= 8; duration++ {
			q := CalculateQuote(rate, duration)
			assert.Equal(t, q.LessonPrice+q.PlatformFee, q.Total)
			assert.GreaterOrEqual(t, q.PlatformFee, 0)
			assert.GreaterOrEqual(t, q.LessonPrice, 0)
		}
	}
}
