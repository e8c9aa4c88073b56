// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := RealClock{}.Now()
	if got.Before(before) {
		t.Errorf("Now() = %v, before %v", got, before)
	}
}

func TestFakeClock(t *testing.T) {
	t.Parallel()

	c := NewFakeClock(time.Time{})
	if got := c.Now(); !got.Equal(ReferenceTime) {
		t.Errorf("Now() = %v, want %v", got, ReferenceTime)
	}

	c.Advance(time.Hour)
	if got := c.Now(); !got.Equal(ReferenceTime.Add(time.Hour)) {
		t.Errorf("after Advance, Now() = %v", got)
	}

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	c.Set(at)
	c.AutoAdvance(time.Second)
	first, second := c.Now(), c.Now()
	if !first.Equal(at) || !second.Equal(at.Add(time.Second)) {
		t.Errorf("AutoAdvance: got %v then %v", first, second)
	}

	var _ Clock = c
	var _ Clock = RealClock{}
}
