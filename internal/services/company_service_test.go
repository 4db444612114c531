package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growcoach_backend/internal/models"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type companyFixture struct {
	service       CompanyService
	users         *fakeUserRepo
	companies     *fakeCompanyRepo
	notifications *fakeNotificationRepo
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()

	f := &companyFixture{
		users:         newFakeUserRepo(),
		companies:     newFakeCompanyRepo(),
		notifications: newFakeNotificationRepo(),
	}
	f.service = NewCompanyService(f.users, f.companies, f.notifications, newFakeUploads())
	return f
}

func (f *companyFixture) addCompany(t *testing.T, verified bool) *models.User {
	t.Helper()

	user := &models.User{
		Email:        "rh@acme.fr",
		PasswordHash: "x",
		Role:         models.UserRoleCompany,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, f.users.Create(user))
	require.NoError(t, f.companies.Create(&models.CompanyProfile{
		UserID:      user.ID,
		CompanyName: "Acme",
		Verified:    verified,
		Logo:        "logos/acme.png",
	}))
	return user
}

func TestGetCompanyProfile(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newCompanyFixture(t)
	user := f.addCompany(t, false)

	// Act
	resp, err := f.service.GetProfile(context.Background(), user.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "rh@acme.fr", resp.Email)
	assert.Equal(t, "Acme", resp.CompanyName)
	assert.Equal(t, "http://files.test/logos/acme.png", resp.LogoURL)
}

func TestUpdateCompanyProfileMergesProvidedFields(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newCompanyFixture(t)
	user := f.addCompany(t, false)
	website := "https://acme.fr"

	// Act
	profile, err := f.service.UpdateProfile(user.ID, &dto.UpdateCompanyProfileRequest{Website: &website})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://acme.fr", profile.Website)
	assert.Equal(t, "Acme", profile.CompanyName)
}

func TestRequestVerificationQueuesOnce(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newCompanyFixture(t)
	user := f.addCompany(t, false)

	// Act
	require.NoError(t, f.service.RequestVerification(user.ID))

	// Assert: the request lands on the dashboard.
	notifs, _, err := f.notifications.FindAll(10, 0)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationVerificationRequest, notifs[0].Type)
	assert.Equal(t, user.ID, notifs[0].SubjectID)

	// A second request while one is pending is refused.
	err = f.service.RequestVerification(user.ID)
	assert.ErrorIs(t, err, apperrors.ErrVerificationPending)
}

func TestRequestVerificationAlreadyVerified(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newCompanyFixture(t)
	user := f.addCompany(t, true)

	// Act
	err := f.service.RequestVerification(user.ID)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
}

func TestVerificationStatus(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newCompanyFixture(t)
	user := f.addCompany(t, false)

	// Act: no request yet.
	status, err := f.service.VerificationStatus(user.ID)

	// Assert
	require.NoError(t, err)
	assert.False(t, status.Verified)
	assert.False(t, status.RequestPending)

	// A filed request shows up as pending.
	require.NoError(t, f.service.RequestVerification(user.ID))
	status, err = f.service.VerificationStatus(user.ID)
	require.NoError(t, err)
	assert.True(t, status.RequestPending)
}

func TestVerificationStatusVerifiedCompany(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newCompanyFixture(t)
	user := f.addCompany(t, true)

	// Act
	status, err := f.service.VerificationStatus(user.ID)

	// Assert
	require.NoError(t, err)
	assert.True(t, status.Verified)
	assert.False(t, status.RequestPending)
}

func TestBrowseCandidatesListsActiveOnly(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newCompanyFixture(t)
	active := &models.User{
		Email:  "marie@exemple.fr",
		Role:   models.UserRoleCandidate,
		Status: models.UserStatusActive,
		CandidateProfile: &models.CandidateProfile{
			FirstName: "Marie",
			LastName:  "Dupont",
			Location:  "Lyon",
			Skills:    []string{"go", "sql"},
			Avatar:    "avatars/m.jpg",
		},
	}
	pending := &models.User{
		Email:            "paul@exemple.fr",
		Role:             models.UserRoleCandidate,
		Status:           models.UserStatusPending,
		CandidateProfile: &models.CandidateProfile{FirstName: "Paul"},
	}
	require.NoError(t, f.users.Create(active))
	require.NoError(t, f.users.Create(pending))

	// Act
	resp, err := f.service.BrowseCandidates(context.Background(), "", 1, 20)

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	got := resp.Candidates[0]
	assert.Equal(t, active.ID, got.UserID)
	assert.Equal(t, "Marie", got.FirstName)
	assert.Equal(t, "Lyon", got.Location)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)
	assert.Equal(t, "http://files.test/avatars/m.jpg", got.AvatarURL)
}
