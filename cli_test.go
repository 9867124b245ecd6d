package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/portalcc/licensetui/portal"
	"github.com/portalcc/licensetui/portal/mock"
)

func newMockBackend(t *testing.T) *mock.MockBackend {
	t.Helper()
	b, err := mock.New()
	require.NoError(t, err)
	backend := b.(*mock.MockBackend)
	backend.ActionSleep = 0
	return backend
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n")), "\n")
}

func TestRunSchools(t *testing.T) {
	backend := newMockBackend(t)
	var buf bytes.Buffer

	err := runSchools(context.Background(), &buf, backend, listOptions{})
	require.NoError(t, err)

	out := lines(buf.String())
	require.Len(t, out, 6)
	assert.Equal(t, "1\t"+backend.Schools[0].ID+"\tSpringfield Elementary\tskinner@springfield.edu\t4\tinactive", out[0])
	assert.Equal(t, "4\t"+backend.Schools[3].ID+"\tBayside High\tbelding@bayside.edu\t0\tinactive", out[3])
	assert.True(t, strings.HasSuffix(out[4], "\t3\tactive"), out[4])
}

func TestRunSchools_SearchAndSort(t *testing.T) {
	backend := newMockBackend(t)
	var buf bytes.Buffer

	err := runSchools(context.Background(), &buf, backend, listOptions{Search: "HIGH", Sort: portal.KeyName, Desc: true})
	require.NoError(t, err)

	var names []string
	for _, line := range lines(buf.String()) {
		names = append(names, strings.Split(line, "\t")[2])
	}
	assert.Equal(t, []string{"Sunnydale High", "Shelbyville High", "Bayside High"}, names)
}

func TestRunSchools_JSON(t *testing.T) {
	backend := newMockBackend(t)
	var buf bytes.Buffer

	err := runSchools(context.Background(), &buf, backend, listOptions{JSON: true, Search: "hogwarts"})
	require.NoError(t, err)

	var got []schoolJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, schoolJSON{No: 1, ID: backend.Schools[5].ID, Name: "Hogwarts School", Email: "owl@hogwarts.ac.uk", Licenses: 1}, got[0])
}

func TestRunSchools_UnknownSortKey(t *testing.T) {
	var buf bytes.Buffer
	err := runSchools(context.Background(), &buf, newMockBackend(t), listOptions{Sort: "color"})
	require.ErrorIs(t, err, portal.ErrInvalidInput)
	assert.Contains(t, err.Error(), "allLicensesActive")
}

func TestRunLicenses(t *testing.T) {
	backend := newMockBackend(t)
	school := backend.Schools[0]
	var buf bytes.Buffer

	err := runLicenses(context.Background(), &buf, backend, time.Now(), school.ID, listOptions{Sort: portal.KeyStatus})
	require.NoError(t, err)

	out := lines(buf.String())
	require.Len(t, out, 4)
	var statuses []string
	for _, line := range out {
		statuses = append(statuses, strings.Split(line, "\t")[2])
	}
	assert.Equal(t, []string{"Active", "Active", "Not Active", "Probation"}, statuses)
	assert.True(t, strings.HasSuffix(out[2], "\tN/A"), out[2])
}

func TestRunLicenses_NotFound(t *testing.T) {
	var buf bytes.Buffer
	err := runLicenses(context.Background(), &buf, newMockBackend(t), time.Now(), "missing", listOptions{})
	require.ErrorIs(t, err, portal.ErrNotFound)
}

func testAuth(t *testing.T) *portal.Authenticator {
	t.Helper()
	var accounts []portal.Account
	for _, a := range []struct {
		email string
		role  portal.Role
	}{{"admin@portal.cc", portal.RoleAdmin}, {"user@portal.cc", portal.RoleUser}} {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
		require.NoError(t, err)
		accounts = append(accounts, portal.Account{Email: a.email, Role: a.role, PasswordHash: string(hash)})
	}
	return portal.NewAuthenticator(accounts...)
}

func TestRunRenew(t *testing.T) {
	backend := newMockBackend(t)
	school := backend.Schools[0]
	lapsed := school.Licenses[2]
	now := time.Now()
	want := portal.Date(now).AddDate(1, 0, 0)

	var buf bytes.Buffer
	err := runRenew(context.Background(), &buf, backend, testAuth(t), now, "admin@portal.cc", "secret", school.ID, lapsed.ID)
	require.NoError(t, err)

	assert.Equal(t, "License "+lapsed.ID+" renewed until "+want.Format(time.DateOnly)+"\n", buf.String())
	assert.True(t, backend.Schools[0].Licenses[2].ExpiryDate.Equal(want))
}

func TestRunRenew_Rejected(t *testing.T) {
	backend := newMockBackend(t)
	school := backend.Schools[0]
	licenseID := school.Licenses[0].ID
	before := school.Licenses[0].ExpiryDate

	tests := []struct {
		name     string
		email    string
		password string
		license  string
		wantErr  error
	}{
		{"wrong password", "admin@portal.cc", "nope", licenseID, portal.ErrInvalidCredentials},
		{"user role", "user@portal.cc", "secret", licenseID, portal.ErrPermissionDenied},
		{"unknown license", "admin@portal.cc", "secret", "missing", portal.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runRenew(context.Background(), &buf, backend, testAuth(t), time.Now(), tc.email, tc.password, school.ID, tc.license)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, buf.String())
		})
	}
	assert.True(t, backend.Schools[0].Licenses[0].ExpiryDate.Equal(before), "rejected renewals must not change the license")
}
