package service

import "math"

/* ==========================
   Bunk calculator
========================== */

const (
	// DefaultTargetPercentage is used when the caller supplies no usable target.
	DefaultTargetPercentage = 75.0

	// percentEpsilon absorbs floating-point drift when comparing the current
	// percentage against the target.
	percentEpsilon = 1e-9

	// borderlineHeadroom: above target but with less than this many classes of
	// skippable headroom is flagged borderline instead of bunkable. Fixed UX
	// constant, unrelated to percentEpsilon.
	borderlineHeadroom = 0.9
)

type AttendanceResult struct {
	CanBunk          int     `json:"can_bunk"`
	RequiredToAttend int     `json:"required_to_attend"`
	TargetPercentage float64 `json:"target_percentage"`
	IsExact          bool    `json:"is_exact"`
	IsBorderline     bool    `json:"is_borderline"`
}

// SanitizeTarget normalizes a target percentage: non-finite values fall back
// to the default, everything else is clamped to [1, 100].
func SanitizeTarget(target float64) float64 {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return DefaultTargetPercentage
	}
	if target < 1 {
		return 1
	}
	if target > 100 {
		return 100
	}
	return target
}

// CalculateAttendance computes how many upcoming sessions can be skipped while
// staying at or above the target percentage, or how many must be attended to
// reach it. Invalid input (total <= 0, negative present, present > total) is
// treated as "no information" and yields the zero result, never an error.
func CalculateAttendance(present, total, targetPercentage float64) AttendanceResult {
	safeTarget := SanitizeTarget(targetPercentage)

	result := AttendanceResult{TargetPercentage: safeTarget}
	if total <= 0 || present < 0 || present > total {
		return result
	}

	current := present / total * 100

	if math.Abs(current-safeTarget) < percentEpsilon {
		result.IsExact = true
		return result
	}

	if current < safeTarget {
		// Each attended class bumps numerator and denominator by one.
		if safeTarget >= 100 {
			result.RequiredToAttend = int(math.Ceil(total - present))
		} else {
			required := math.Ceil((safeTarget*total - 100*present) / (100 - safeTarget))
			if required > 0 {
				result.RequiredToAttend = int(required)
			}
		}
		return result
	}

	// Above target: each skipped class bumps the denominator only.
	bunkableExact := (100*present - safeTarget*total) / safeTarget
	if canBunk := math.Floor(bunkableExact); canBunk > 0 {
		result.CanBunk = int(canBunk)
	}
	if bunkableExact > 0 && bunkableExact < borderlineHeadroom && result.CanBunk == 0 {
		result.IsBorderline = true
	}
	return result
}
