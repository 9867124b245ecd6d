package portal

import (
	"context"
	"time"
)

// School is a school account as reported by the licensing API.
type School struct {
	ID                string
	Name              string
	Email             string
	LicenseCount      int
	AllLicensesActive bool
}

// License is a single software license that belongs to a school.
type License struct {
	ID string
	// Status is whatever the API reports. The displayed status is always
	// derived locally with Classify.
	Status     string
	ExpiryDate time.Time
	// DeviceName is empty when no device has claimed the license.
	DeviceName string
}

// NewSchool holds the fields needed to create a school account.
type NewSchool struct {
	Name                  string `json:"schoolName" label:"Name" validate:"required,max=128"`
	Email                 string `json:"email" label:"Email" validate:"required,email"`
	CreateDefaultLicenses bool   `json:"createDefaultLicenses"`
}

// Backend is the remote licensing API.
type Backend interface {
	// ListSchools returns every school visible to the administrator.
	ListSchools(ctx context.Context) ([]School, error)
	// GetSchool returns the name and email of a single school.
	GetSchool(ctx context.Context, schoolID string) (School, error)
	// CreateSchool creates a school account, optionally with default licenses.
	CreateSchool(ctx context.Context, s NewSchool) error
	// DeleteSchool removes a school and its licenses.
	DeleteSchool(ctx context.Context, schoolID string) error

	// ListLicenses returns the licenses of a school.
	ListLicenses(ctx context.Context, schoolID string) ([]License, error)
	// UpdateLicenseExpiry sets a new expiry date on a license.
	UpdateLicenseExpiry(ctx context.Context, schoolID, licenseID string, expiry time.Time) error
	// DeleteLicense removes a license from a school.
	DeleteLicense(ctx context.Context, schoolID, licenseID string) error
	// AddLicenses creates count new licenses for a school.
	AddLicenses(ctx context.Context, schoolID string, count int) error
}
