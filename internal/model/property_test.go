package model

import (
	"testing"
	"time"
)

func TestAgeInDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created time.Time
		want    int
	}{
		{"zero created", time.Time{}, 0},
		{"created now", now, 0},
		{"one hour rounds up", now.Add(-1 * time.Hour), 1},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"one day and a minute", now.Add(-24*time.Hour - time.Minute), 2},
		{"exactly thirty days", now.Add(-30 * 24 * time.Hour), 30},
		{"thirty-one days", now.Add(-31 * 24 * time.Hour), 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Property{CreatedAt: tt.created}
			if got := p.AgeInDays(now); got != tt.want {
				t.Errorf("AgeInDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStaleness(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	at := func(days int) time.Time { return now.Add(-time.Duration(days) * 24 * time.Hour) }

	tests := []struct {
		name       string
		created    time.Time
		status     ListingStatus
		wantStale  bool
		wantUrgent bool
	}{
		{"active at 30 days exactly", at(30), ListingActive, false, false},
		{"active at 31 days", at(31), ListingActive, true, false},
		{"active at 45 days exactly", at(45), ListingActive, true, false},
		{"active at 46 days", at(46), ListingActive, true, true},
		{"sold at 60 days", at(60), ListingSold, false, false},
		{"inactive at 60 days", at(60), ListingInactive, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Property{CreatedAt: tt.created, ListingStatus: tt.status}
			if got := p.IsStaleActive(now); got != tt.wantStale {
				t.Errorf("IsStaleActive() = %v, want %v", got, tt.wantStale)
			}
			if got := p.IsStaleUrgent(now); got != tt.wantUrgent {
				t.Errorf("IsStaleUrgent() = %v, want %v", got, tt.wantUrgent)
			}
		})
	}
}

func TestComputeStaleness(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	p := &Property{
		CreatedAt:     now.Add(-40 * 24 * time.Hour),
		ListingStatus: ListingActive,
	}
	p.ComputeStaleness(now)

	if p.DaysOld != 40 {
		t.Errorf("DaysOld = %d, want 40", p.DaysOld)
	}
	if !p.StaleActive {
		t.Error("StaleActive should be set at 40 days")
	}
	if p.StaleUrgent {
		t.Error("StaleUrgent should not be set at 40 days")
	}
}

func TestStatusEnums(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Error("unknown status should be invalid")
	}

	for _, s := range []ListingStatus{ListingActive, ListingSold, ListingRented, ListingInactive} {
		if !s.Valid() {
			t.Errorf("listing status %q should be valid", s)
		}
	}
	if ListingStatus("paused").Valid() {
		t.Error("unknown listing status should be invalid")
	}
}
