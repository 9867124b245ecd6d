package portal

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	expiry := date(2024, 1, 15)

	tests := []struct {
		name     string
		now      time.Time
		device   string
		expected Status
	}{
		{"Before expiry with device", date(2024, 1, 10), "iPad-1", StatusActive},
		{"Before expiry without device", date(2024, 1, 10), NoDevice, StatusNotActive},
		{"Before expiry with none device", date(2024, 1, 10), "none", StatusNotActive},
		{"After expiry within grace", date(2024, 1, 20), "iPad-1", StatusProbation},
		{"After expiry within grace without device", date(2024, 1, 20), NoDevice, StatusProbation},
		{"Past grace", date(2024, 3, 16), "iPad-1", StatusExpired},
		{"Past grace without device", date(2024, 3, 16), NoDevice, StatusExpired},
		{"On expiry day", date(2024, 1, 15), "iPad-1", StatusActive},
		{"On expiry day late in the evening", time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC), "iPad-1", StatusActive},
		{"Day after expiry", date(2024, 1, 16), "iPad-1", StatusProbation},
		{"On last grace day", date(2024, 3, 15), "iPad-1", StatusProbation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(expiry, tt.device, tt.now); got != tt.expected {
				t.Errorf("Classify(%s, %q, %s) = %s, want %s", expiry.Format(time.DateOnly), tt.device, tt.now.Format(time.DateTime), got, tt.expected)
			}
		})
	}
}

func TestGraceEnd(t *testing.T) {
	tests := []struct {
		expiry   time.Time
		expected time.Time
	}{
		{date(2024, 1, 15), date(2024, 3, 15)},
		{date(2023, 12, 31), date(2024, 3, 2)}, // Feb 31 2024 rolls over
		{date(2022, 12, 31), date(2023, 3, 3)},
		{date(2024, 11, 30), date(2025, 1, 30)},
	}
	for _, tt := range tests {
		if got := GraceEnd(tt.expiry); !got.Equal(tt.expected) {
			t.Errorf("GraceEnd(%s) = %s, want %s", tt.expiry.Format(time.DateOnly), got.Format(time.DateOnly), tt.expected.Format(time.DateOnly))
		}
	}
}

func TestRenewalDate(t *testing.T) {
	tests := []struct {
		name     string
		current  time.Time
		now      time.Time
		expected time.Time
	}{
		{"Lapsed renews from today", date(2023, 6, 1), date(2024, 1, 1), date(2025, 1, 1)},
		{"Running renews from expiry", date(2025, 6, 1), date(2024, 1, 1), date(2026, 6, 1)},
		{"Expiring today renews from expiry", date(2024, 1, 1), time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC), date(2025, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenewalDate(tt.current, tt.now); !got.Equal(tt.expected) {
				t.Errorf("RenewalDate() = %s, want %s", got.Format(time.DateOnly), tt.expected.Format(time.DateOnly))
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{
		StatusActive:    "Active",
		StatusNotActive: "Not Active",
		StatusProbation: "Probation",
		StatusExpired:   "Expired",
	} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
