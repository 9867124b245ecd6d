package portal

import (
	"strings"
	"time"
)

// Sortable column keys.
const (
	KeyIndex = "index"

	KeyName              = "name"
	KeyEmail             = "email"
	KeyLicenses          = "licenses"
	KeyAllLicensesActive = "allLicensesActive"

	KeyLicenseNo  = "licenseNo"
	KeyStatus     = "status"
	KeyExpiryDate = "expiryDate"
	KeyDeviceName = "deviceName"
)

// SchoolRow is a school as displayed in the school list.
type SchoolRow struct {
	// Seq is the 1-based position of the school in the fetch response.
	Seq               int
	SchoolID          string
	Name              string
	Email             string
	LicenseCount      int
	AllLicensesActive bool
}

// SchoolColumns are the sortable columns of the school list.
var SchoolColumns = Columns[SchoolRow]{
	By(KeyIndex, func(r SchoolRow) int { return r.Seq }),
	By(KeyName, func(r SchoolRow) string { return r.Name }),
	By(KeyEmail, func(r SchoolRow) string { return r.Email }),
	By(KeyLicenses, func(r SchoolRow) int { return r.LicenseCount }),
	ByBool(KeyAllLicensesActive, func(r SchoolRow) bool { return r.AllLicensesActive }),
}

// SchoolRows maps a fetch response into display rows.
func SchoolRows(schools []School) []SchoolRow {
	rows := make([]SchoolRow, len(schools))
	for i, s := range schools {
		rows[i] = SchoolRow{
			Seq:               i + 1,
			SchoolID:          s.ID,
			Name:              s.Name,
			Email:             s.Email,
			LicenseCount:      s.LicenseCount,
			AllLicensesActive: s.AllLicensesActive,
		}
	}
	return rows
}

// FilterSchools keeps rows whose name or email contains query, ignoring case.
// An empty query keeps everything.
func FilterSchools(rows []SchoolRow, query string) []SchoolRow {
	q := strings.ToLower(query)
	out := make([]SchoolRow, 0, len(rows))
	for _, r := range rows {
		if q == "" || strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Email), q) {
			out = append(out, r)
		}
	}
	return out
}

// LicenseRow is a license as displayed in the license list.
type LicenseRow struct {
	Seq        int
	LicenseID  string
	Status     Status
	ExpiryDate time.Time
	DeviceName string
}

// LicenseColumns are the sortable columns of the license list. Status sorts
// by its label.
var LicenseColumns = Columns[LicenseRow]{
	By(KeyIndex, func(r LicenseRow) int { return r.Seq }),
	By(KeyLicenseNo, func(r LicenseRow) string { return r.LicenseID }),
	By(KeyStatus, func(r LicenseRow) string { return r.Status.String() }),
	ByTime(KeyExpiryDate, func(r LicenseRow) time.Time { return r.ExpiryDate }),
	By(KeyDeviceName, func(r LicenseRow) string { return r.DeviceName }),
}

// LicenseRows maps a fetch response into display rows, classifying each
// license at now.
func LicenseRows(licenses []License, now time.Time) []LicenseRow {
	rows := make([]LicenseRow, len(licenses))
	for i, l := range licenses {
		device := l.DeviceName
		if device == "" {
			device = NoDevice
		}
		expiry := Date(l.ExpiryDate.In(now.Location()))
		rows[i] = LicenseRow{
			Seq:        i + 1,
			LicenseID:  l.ID,
			Status:     Classify(expiry, device, now),
			ExpiryDate: expiry,
			DeviceName: device,
		}
	}
	return rows
}

// RemoveLicense returns rows without the license with the given id.
func RemoveLicense(rows []LicenseRow, licenseID string) []LicenseRow {
	out := make([]LicenseRow, 0, len(rows))
	for _, r := range rows {
		if r.LicenseID != licenseID {
			out = append(out, r)
		}
	}
	return out
}

// FindLicense returns the row with the given id.
func FindLicense(rows []LicenseRow, licenseID string) (LicenseRow, bool) {
	for _, r := range rows {
		if r.LicenseID == licenseID {
			return r, true
		}
	}
	return LicenseRow{}, false
}
