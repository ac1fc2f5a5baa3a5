// Package srs implements the SM-2 spaced repetition scheduling algorithm.
package srs

import (
	"errors"
	"math"

	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
)

// A quality below this is a failed recall; the repetition streak restarts.
const passThreshold = 3

// Intervals (in days) for the first two successful repetitions.
const (
	firstInterval  = 1
	secondInterval = 6
)

// ErrInvalidQuality is returned when the quality rating is outside 1..5.
var ErrInvalidQuality = errors.New("srs: quality must be between 1 and 5")

// Result holds the scheduling state produced by one application of the
// algorithm.
type Result struct {
	Repetitions int
	Easiness    float64
	Interval    int // days
}

// Advance maps a quality rating (1-5) and the prior scheduling state to the
// next state. It is pure and deterministic; this numeric contract is shared
// across implementations and must not drift.
//
// A failed recall (quality < 3) resets the repetition streak and schedules
// the word for tomorrow. The easiness factor is updated on every call,
// including failures, so repeatedly missed words keep getting harder:
//
//	EF' = max(1.3, EF + 0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// Successful recalls grow the interval: 1 day after the first, 6 days after
// the second, then round(interval * EF') thereafter.
func Advance(quality, repetitions int, easiness float64, interval int) (Result, error) {
	if quality < domain.MinQuality || quality > domain.MaxQuality {
		return Result{}, ErrInvalidQuality
	}

	newEasiness := nextEasiness(easiness, quality)

	if quality < passThreshold {
		return Result{
			Repetitions: 0,
			Easiness:    newEasiness,
			Interval:    firstInterval,
		}, nil
	}

	var newInterval int
	switch repetitions {
	case 0:
		newInterval = firstInterval
	case 1:
		newInterval = secondInterval
	default:
		newInterval = int(math.Round(float64(interval) * newEasiness))
	}

	return Result{
		Repetitions: repetitions + 1,
		Easiness:    newEasiness,
		Interval:    newInterval,
	}, nil
}

// nextEasiness applies the SM-2 easiness update and floors the result.
// There is no upper bound.
func nextEasiness(easiness float64, quality int) float64 {
	q := float64(quality)
	next := easiness + 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if next < domain.MinEasiness {
		return domain.MinEasiness
	}
	return next
}
