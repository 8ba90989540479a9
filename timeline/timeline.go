// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package timeline plans same-day creation and update timestamps for a batch
// of files so that they read like one sequential working session.
package timeline

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Layout is the timestamp format used in header fields.
const Layout = "2006/01/02 15:04:05"

// Format formats t using [Layout].
func Format(t time.Time) string { return t.Format(Layout) }

// MaxSeconds is the largest duration a [Range] may describe. A session
// never spans more than one day.
const MaxSeconds = 24 * 60 * 60

// Range is an inclusive range of seconds.
type Range struct {
	Min int
	Max int
}

// Validate reports whether r is usable for drawing durations.
func (r Range) Validate() error {
	if r.Min < 0 {
		return fmt.Errorf("negative minimum %d", r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("minimum %d exceeds maximum %d", r.Min, r.Max)
	}
	if r.Max > MaxSeconds {
		return fmt.Errorf("maximum %d exceeds one day (%d seconds)", r.Max, MaxSeconds)
	}
	return nil
}

func (r Range) draw(rng *rand.Rand) time.Duration {
	return time.Duration(r.Min+rng.IntN(r.Max-r.Min+1)) * time.Second
}

// Window holds the creation and update timestamps of a single file.
type Window struct {
	Created time.Time
	Updated time.Time
}

func (w Window) String() string {
	return Format(w.Created) + " -> " + Format(w.Updated)
}

// Plan returns n windows, one per file in order.
//
// All timestamps fall on the calendar day of now. Consecutive creation times
// are spaced by a duration drawn from gap and each file is worked on for a
// duration drawn from work. The session ends at or before now when it fits;
// otherwise it is shifted towards midnight and clamped to the end of the day.
//
// All randomness is drawn upfront: n-1 gaps first, then n work durations.
// Both ranges must be valid. Plan panics otherwise.
func Plan(n int, now time.Time, gap, work Range, rng *rand.Rand) []Window {
	if n <= 0 {
		return nil
	}
	if err := gap.Validate(); err != nil {
		panic(fmt.Sprintf("timeline: invalid gap range: %v", err))
	}
	if err := work.Validate(); err != nil {
		panic(fmt.Sprintf("timeline: invalid work range: %v", err))
	}

	now = now.Truncate(time.Second)
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	endOfDay := time.Date(y, m, d, 23, 59, 59, 0, now.Location())

	gaps := make([]time.Duration, n-1)
	for i := range gaps {
		gaps[i] = gap.draw(rng)
	}
	works := make([]time.Duration, n)
	for i := range works {
		works[i] = work.draw(rng)
	}

	// Capped at a day so the sum cannot overflow for large n.
	const day = MaxSeconds * time.Second
	span := works[n-1]
	for _, g := range gaps {
		if span += g; span > day {
			span = day
			break
		}
	}

	base := now
	if latest := endOfDay.Add(-span); latest.Before(base) {
		base = latest
	}
	if base.Before(startOfDay) {
		base = startOfDay.Add(time.Second)
	}

	windows := make([]Window, n)
	t := base
	for i := range windows {
		created := t
		updated := created.Add(works[i])
		if updated.After(endOfDay) {
			updated = endOfDay
		}
		windows[i] = Window{
			Created: clamp(created, startOfDay, endOfDay),
			Updated: clamp(updated, startOfDay, endOfDay),
		}
		if i < n-1 {
			t = t.Add(gaps[i])
		}
	}
	return windows
}

func clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
