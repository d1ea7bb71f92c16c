package engine

import (
	"math"
	"time"
)

// The focus index measures how close a stretch of work came to the
// 52-minute-work / 17-minute-break cadence, with a penalty for taking
// breaks more often than the worked time earns.
const (
	idealWorkMins  = 52
	idealBreakMins = 17

	// ratioCeiling scales the ratio-derived component so that hitting
	// the ideal cadence exactly scores 80, not 100. Only a work share
	// above the ideal pushes the component past 80, clamped at 100.
	ratioCeiling = 80

	// allowedBreakMins grants one extra allowed break per full block
	// of worked minutes, on top of one free break.
	allowedBreakMins = 55

	excessBreakPenalty = 5
)

// FocusIndex maps worked time, break time, and break count to a score
// in [0, 100]. A zero total returns 0.
func FocusIndex(work, brk time.Duration, breakCount int) int {
	total := work + brk
	if total == 0 {
		return 0
	}

	idealRatio := float64(idealWorkMins) / float64(idealWorkMins+idealBreakMins)
	currentRatio := float64(work) / float64(total)

	ratioScore := currentRatio / idealRatio * ratioCeiling
	ratioScore = math.Min(100, ratioScore)

	allowedBreaks := 1 + int(work.Minutes())/allowedBreakMins

	excessBreaks := breakCount - allowedBreaks
	if excessBreaks < 0 {
		excessBreaks = 0
	}

	score := int(math.Round(ratioScore)) - excessBreaks*excessBreakPenalty
	if score < 0 {
		score = 0
	}

	return score
}

// FocusGrade buckets a focus index into a letter grade for display.
func FocusGrade(score int) string {
	switch {
	case score >= 90:
		return "S"
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	default:
		return "D"
	}
}

// FocusLabel describes a focus index in words.
func FocusLabel(score int) string {
	switch {
	case score >= 90:
		return "deep focus"
	case score >= 80:
		return "great focus"
	case score >= 60:
		return "steady flow"
	case score >= 40:
		return "scattered"
	default:
		return "needs rest"
	}
}
