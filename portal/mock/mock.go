package mock

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/portalcc/licensetui/portal"
)

var DefaultActionSleep = 500 * time.Millisecond

// DefaultLicenseCount is how many licenses a school created with
// CreateDefaultLicenses starts with.
const DefaultLicenseCount = 5

type mockSchool struct {
	portal.School
	Licenses []portal.License
}

// MockBackend is an in-memory implementation of portal.Backend.
type MockBackend struct {
	mu      sync.Mutex
	Schools []*mockSchool

	ListSchoolsError  error
	GetSchoolError    error
	CreateSchoolError error
	DeleteSchoolError error
	ListLicensesError error
	UpdateLicenseErr  error
	DeleteLicenseErr  error
	AddLicensesError  error

	// Now is the clock used for new licenses and derived school flags.
	Now portal.Clock

	// ActionSleep is a delay before every action, to better emulate a real-world backend for the frontend. Set to 0 during testing.
	ActionSleep time.Duration
}

func newID() string {
	return uuid.NewString()
}

func license(expiry time.Time, device string) portal.License {
	return portal.License{ID: newID(), ExpiryDate: expiry, DeviceName: device}
}

// New creates a mock backend seeded with a handful of schools.
func New() (portal.Backend, error) {
	now := time.Now()
	in := func(days int) time.Time { return portal.Date(now).AddDate(0, 0, days) }

	seed := []*mockSchool{
		{
			School: portal.School{Name: "Springfield Elementary", Email: "skinner@springfield.edu"},
			Licenses: []portal.License{
				license(in(200), "Lisa's iPad"),
				license(in(200), "Library Chromebook"),
				license(in(-20), "Bart's iPad"),
				license(in(90), ""),
			},
		},
		{
			School: portal.School{Name: "Shelbyville High", Email: "office@shelbyville.edu"},
			Licenses: []portal.License{
				license(in(365), "Gym Tablet"),
				license(in(12), "Coach Laptop"),
			},
		},
		{
			School: portal.School{Name: "Sunnydale High", Email: "snyder@sunnydale.edu"},
			Licenses: []portal.License{
				license(in(-120), "Library Terminal"),
				license(in(-75), "none"),
				license(in(30), "Giles' Laptop"),
			},
		},
		{
			School: portal.School{Name: "Bayside High", Email: "belding@bayside.edu"},
		},
		{
			School: portal.School{Name: "Degrassi Community School", Email: "front.desk@degrassi.ca"},
			Licenses: []portal.License{
				license(in(400), "Media Lab 1"),
				license(in(400), "Media Lab 2"),
				license(in(400), "Media Lab 3"),
			},
		},
		{
			School: portal.School{Name: "Hogwarts School", Email: "owl@hogwarts.ac.uk"},
			Licenses: []portal.License{
				license(in(-3), "Pensieve"),
			},
		},
	}
	for _, s := range seed {
		s.ID = newID()
	}

	return &MockBackend{
		Schools:     seed,
		Now:         time.Now,
		ActionSleep: DefaultActionSleep,
	}, nil
}

// sleep waits ActionSleep or until ctx is done.
func (m *MockBackend) sleep(ctx context.Context) error {
	if m.ActionSleep <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.ActionSleep)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *MockBackend) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *MockBackend) find(schoolID string) (*mockSchool, error) {
	for _, s := range m.Schools {
		if s.ID == schoolID {
			return s, nil
		}
	}
	return nil, fmt.Errorf("school %s: %w", schoolID, portal.ErrNotFound)
}

func (m *MockBackend) ListSchools(ctx context.Context) ([]portal.School, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if m.ListSchoolsError != nil {
		return nil, m.ListSchoolsError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	result := make([]portal.School, 0, len(m.Schools))
	for _, s := range m.Schools {
		school := s.School
		school.LicenseCount = len(s.Licenses)
		school.AllLicensesActive = len(s.Licenses) > 0
		for _, l := range s.Licenses {
			if portal.Classify(l.ExpiryDate, deviceOrPlaceholder(l.DeviceName), now) != portal.StatusActive {
				school.AllLicensesActive = false
				break
			}
		}
		result = append(result, school)
	}
	return result, nil
}

func deviceOrPlaceholder(device string) string {
	if device == "" {
		return portal.NoDevice
	}
	return device
}

func (m *MockBackend) GetSchool(ctx context.Context, schoolID string) (portal.School, error) {
	if err := m.sleep(ctx); err != nil {
		return portal.School{}, err
	}
	if m.GetSchoolError != nil {
		return portal.School{}, m.GetSchoolError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.find(schoolID)
	if err != nil {
		return portal.School{}, err
	}
	return portal.School{ID: s.ID, Name: s.Name, Email: s.Email}, nil
}

func (m *MockBackend) CreateSchool(ctx context.Context, ns portal.NewSchool) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	if m.CreateSchoolError != nil {
		return m.CreateSchoolError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.Schools {
		if s.Email == ns.Email {
			return fmt.Errorf("school with email %s already exists: %w", ns.Email, portal.ErrInvalidInput)
		}
	}
	s := &mockSchool{School: portal.School{ID: newID(), Name: ns.Name, Email: ns.Email}}
	if ns.CreateDefaultLicenses {
		s.Licenses = m.newLicenses(DefaultLicenseCount)
	}
	m.Schools = append(m.Schools, s)
	return nil
}

func (m *MockBackend) DeleteSchool(ctx context.Context, schoolID string) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	if m.DeleteSchoolError != nil {
		return m.DeleteSchoolError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.Schools, func(s *mockSchool) bool { return s.ID == schoolID })
	if i < 0 {
		return fmt.Errorf("cannot delete school %s: %w", schoolID, portal.ErrNotFound)
	}
	m.Schools = slices.Delete(m.Schools, i, i+1)
	return nil
}

func (m *MockBackend) ListLicenses(ctx context.Context, schoolID string) ([]portal.License, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if m.ListLicensesError != nil {
		return nil, m.ListLicensesError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.find(schoolID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.Licenses), nil
}

func (m *MockBackend) UpdateLicenseExpiry(ctx context.Context, schoolID, licenseID string, expiry time.Time) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	if m.UpdateLicenseErr != nil {
		return m.UpdateLicenseErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.find(schoolID)
	if err != nil {
		return err
	}
	for i := range s.Licenses {
		if s.Licenses[i].ID == licenseID {
			s.Licenses[i].ExpiryDate = expiry
			return nil
		}
	}
	return fmt.Errorf("license %s: %w", licenseID, portal.ErrNotFound)
}

func (m *MockBackend) DeleteLicense(ctx context.Context, schoolID, licenseID string) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	if m.DeleteLicenseErr != nil {
		return m.DeleteLicenseErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.find(schoolID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(s.Licenses, func(l portal.License) bool { return l.ID == licenseID })
	if i < 0 {
		return fmt.Errorf("license %s: %w", licenseID, portal.ErrNotFound)
	}
	s.Licenses = slices.Delete(s.Licenses, i, i+1)
	return nil
}

func (m *MockBackend) AddLicenses(ctx context.Context, schoolID string, count int) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	if m.AddLicensesError != nil {
		return m.AddLicensesError
	}
	if err := portal.ValidateLicenseCount(count); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.find(schoolID)
	if err != nil {
		return err
	}
	s.Licenses = append(s.Licenses, m.newLicenses(count)...)
	return nil
}

// newLicenses returns count unclaimed licenses valid for a year.
func (m *MockBackend) newLicenses(count int) []portal.License {
	expiry := portal.Date(m.now()).AddDate(1, 0, 0)
	out := make([]portal.License, count)
	for i := range out {
		out[i] = license(expiry, "")
	}
	return out
}
