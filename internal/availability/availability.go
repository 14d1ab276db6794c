// Package availability computes whether a medication may be taken again from
// its last dose timestamp and the current time. Everything here is pure: the
// result depends only on absolute timestamps, so delayed or skipped clock
// ticks never affect correctness.
package availability

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/models"
)

// Entry is the per-medication projection consumed by the display layer
type Entry struct {
	Medication   models.Medication
	Availability models.Availability
	Text         string
}

// StatusOf returns the availability of a medication whose last dose was taken
// at last (epoch milliseconds, nil when never taken).
//
// remaining is cooldown minus the elapsed time, so a last dose in the future
// of now (clock moved backwards) waits longer than the cooldown. Arithmetic
// stays in milliseconds; a remaining time too large for a Duration saturates.
func StatusOf(last *int64, now time.Time, cooldown time.Duration) models.Availability {
	if last == nil {
		return models.Availability{Status: models.StatusAvailable}
	}

	threshold := now.UnixMilli() - cooldown.Milliseconds()
	if *last <= threshold {
		return models.Availability{Status: models.StatusAvailable}
	}

	remainingMs := *last - threshold
	remaining := time.Duration(math.MaxInt64)
	if remainingMs > 0 && remainingMs <= maxDurationMs {
		remaining = time.Duration(remainingMs) * time.Millisecond
	}
	return models.Availability{
		Status:    models.StatusWaiting,
		Remaining: remaining,
	}
}

const maxDurationMs = int64(math.MaxInt64 / int64(time.Millisecond))

// FormatRemaining renders d as "{h}h {mm}m {ss}s", truncated to whole seconds.
// Zero and negative durations render as "0h 00m 00s".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return constants.RemainingZeroFormat
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
}

// Evaluate computes the entry of every known medication at now
func Evaluate(l models.Ledger, now time.Time, cooldown time.Duration) []Entry {
	meds := models.Medications()
	entries := make([]Entry, 0, len(meds))
	for _, m := range meds {
		a := StatusOf(l[m], now, cooldown)
		entries = append(entries, Entry{
			Medication:   m,
			Availability: a,
			Text:         FormatRemaining(a.Remaining),
		})
	}
	return entries
}
