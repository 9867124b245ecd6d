package portal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLicenseRows(t *testing.T) {
	now := date(2024, 1, 20)
	licenses := []License{
		{ID: "L-1", ExpiryDate: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), DeviceName: "iPad-1"},
		{ID: "L-2", ExpiryDate: date(2024, 6, 1)},
		{ID: "L-3", ExpiryDate: date(2024, 1, 15), DeviceName: "iPad-3"},
		{ID: "L-4", ExpiryDate: date(2023, 10, 1), DeviceName: "none"},
	}

	rows := LicenseRows(licenses, now)
	require.Len(t, rows, 4)

	assert.Equal(t, 1, rows[0].Seq)
	assert.Equal(t, 4, rows[3].Seq)
	assert.Equal(t, date(2024, 6, 1), rows[0].ExpiryDate, "expiry is truncated to the calendar day")

	assert.Equal(t, StatusActive, rows[0].Status)
	assert.Equal(t, StatusNotActive, rows[1].Status)
	assert.Equal(t, NoDevice, rows[1].DeviceName, "missing device becomes the placeholder")
	assert.Equal(t, StatusProbation, rows[2].Status)
	assert.Equal(t, StatusExpired, rows[3].Status)
	assert.Equal(t, "none", rows[3].DeviceName)
}

func TestSchoolRowsAndFilter(t *testing.T) {
	rows := SchoolRows([]School{
		{ID: "s1", Name: "Springfield Elementary", Email: "office@springfield.edu", LicenseCount: 12, AllLicensesActive: true},
		{ID: "s2", Name: "Shelbyville High", Email: "admin@shelbyville.edu", LicenseCount: 3},
		{ID: "s3", Name: "West Springfield Prep", Email: "info@wsp.org"},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[1].Seq)
	assert.Equal(t, "s2", rows[1].SchoolID)

	tests := []struct {
		query    string
		expected []string
	}{
		{"", []string{"s1", "s2", "s3"}},
		{"springfield", []string{"s1", "s3"}},
		{"SPRINGFIELD", []string{"s1", "s3"}},
		{"shelbyville.edu", []string{"s2"}},
		{".org", []string{"s3"}},
		{"nothing matches", []string{}},
	}
	for _, tt := range tests {
		got := FilterSchools(rows, tt.query)
		ids := make([]string, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.SchoolID)
		}
		assert.Equal(t, tt.expected, ids, "query %q", tt.query)
	}
}

func TestRemoveAndFindLicense(t *testing.T) {
	rows := []LicenseRow{{LicenseID: "a"}, {LicenseID: "b"}, {LicenseID: "c"}}

	left := RemoveLicense(rows, "b")
	require.Len(t, left, 2)
	assert.Equal(t, "a", left[0].LicenseID)
	assert.Equal(t, "c", left[1].LicenseID)
	assert.Len(t, rows, 3, "input is untouched")

	_, ok := FindLicense(left, "b")
	assert.False(t, ok)
	r, ok := FindLicense(rows, "c")
	assert.True(t, ok)
	assert.Equal(t, "c", r.LicenseID)
}
