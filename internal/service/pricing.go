package service

import "math"

// platformFeeRate is the marketplace surcharge applied on top of the lesson price.
const platformFeeRate = 0.10

// Quote is the derived price breakdown for a prospective lesson booking.
type Quote struct {
	LessonPrice int `json:"lesson_price"`
	PlatformFee int `json:"platform_fee"`
	Total       int `json:"total"`
}

// CalculateQuote derives the price breakdown for an hourly rate and duration.
// The platform fee rounds half-up. Non-positive inputs (e.g. a missing
// profile) yield a zero quote; duration range enforcement is left to request
// validation.
func CalculateQuote(hourlyRate, durationHours int) Quote {
	if hourlyRate <= 0 || durationHours <= 0 {
		return Quote{}
	}
	lessonPrice := hourlyRate * durationHours
	platformFee := int(math.Round(float64(lessonPrice) * platformFeeRate))
	return Quote{
		LessonPrice: lessonPrice,
		PlatformFee: platformFee,
		Total:       lessonPrice + platformFee,
	}
}
