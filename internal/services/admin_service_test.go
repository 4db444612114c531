package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type adminFixture struct {
	service       AdminService
	users         *fakeUserRepo
	candidates    *fakeCandidateRepo
	companies     *fakeCompanyRepo
	notifications *fakeNotificationRepo
	resets        *fakeResetRepo
	uploads       *fakeUploads
	emails        *fakeEmailProvider
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	f := &adminFixture{
		users:         newFakeUserRepo(),
		candidates:    newFakeCandidateRepo(),
		companies:     newFakeCompanyRepo(),
		notifications: newFakeNotificationRepo(),
		resets:        newFakeResetRepo(),
		uploads:       newFakeUploads(),
		emails:        newFakeEmailProvider(),
	}
	f.users.resets = f.resets
	f.service = NewAdminService(f.users, f.candidates, f.companies, f.notifications, f.uploads, f.emails)
	return f
}

func (f *adminFixture) addCandidate(t *testing.T, status models.UserStatus) *models.User {
	t.Helper()

	user := &models.User{
		Email:        "candidat@exemple.fr",
		PasswordHash: "x",
		Role:         models.UserRoleCandidate,
		Status:       status,
	}
	require.NoError(t, f.users.Create(user))
	profile := &models.CandidateProfile{UserID: user.ID, FirstName: "Marie", LastName: "Dupont"}
	require.NoError(t, f.candidates.Create(profile))
	user.CandidateProfile = profile
	return user
}

func (f *adminFixture) addCompany(t *testing.T, status models.UserStatus, verified bool) *models.User {
	t.Helper()

	user := &models.User{
		Email:        "rh@acme.fr",
		PasswordHash: "x",
		Role:         models.UserRoleCompany,
		Status:       status,
	}
	require.NoError(t, f.users.Create(user))
	profile := &models.CompanyProfile{UserID: user.ID, CompanyName: "Acme", Verified: verified}
	require.NoError(t, f.companies.Create(profile))
	user.CompanyProfile = profile
	return user
}

func TestApproveUserActivatesPendingAccount(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCandidate(t, models.UserStatusPending)
	require.NoError(t, f.notifications.Create(&models.Notification{
		Type:      models.NotificationCandidateRegistration,
		Text:      "Nouveau candidat inscrit : Marie Dupont",
		SubjectID: user.ID,
	}))

	// Act
	err := f.service.ApproveUser(user.ID)

	// Assert
	require.NoError(t, err)
	updated, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, updated.Status)

	// The registration entry leaves the dashboard.
	_, total, err := f.notifications.FindAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestApproveUserRequiresPendingStatus(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCandidate(t, models.UserStatusActive)

	// Act
	err := f.service.ApproveUser(user.ID)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n'est pas en attente")
}

func TestRejectUserMarksAccountRejected(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCompany(t, models.UserStatusPending, false)
	require.NoError(t, f.notifications.Create(&models.Notification{
		Type:      models.NotificationCompanyRegistration,
		Text:      "Nouvelle entreprise inscrite : Acme",
		SubjectID: user.ID,
	}))

	// Act
	err := f.service.RejectUser(user.ID)

	// Assert
	require.NoError(t, err)
	updated, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusRejected, updated.Status)

	_, total, err := f.notifications.FindAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestBlockAndUnblockUser(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCandidate(t, models.UserStatusActive)

	// Act + Assert
	require.NoError(t, f.service.BlockUser(user.ID))
	blocked, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBlocked, blocked.Status)

	// Blocking twice is refused.
	err = f.service.BlockUser(user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "déjà bloqué")

	require.NoError(t, f.service.UnblockUser(user.ID))
	active, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, active.Status)

	// Unblocking an account that is not blocked is refused.
	err = f.service.UnblockUser(user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n'est pas bloqué")
}

func TestModerationRefusesAdminTargets(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	admin := &models.User{
		Email:        "admin@exemple.fr",
		PasswordHash: "x",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, f.users.Create(admin))

	// Act + Assert
	for _, action := range []func(string) error{
		f.service.ApproveUser,
		f.service.BlockUser,
	} {
		err := action(admin.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
	}

	err := f.service.DeleteUser(context.Background(), admin.ID)
	require.Error(t, err)
}

func TestVerifyCompanyGrantsBadgeAndClearsRequest(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCompany(t, models.UserStatusActive, false)
	require.NoError(t, f.notifications.Create(&models.Notification{
		Type:      models.NotificationVerificationRequest,
		Text:      "Acme demande la vérification",
		SubjectID: user.ID,
	}))

	// Act
	err := f.service.VerifyCompany(user.ID)

	// Assert
	require.NoError(t, err)
	profile, err := f.companies.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.True(t, profile.Verified)

	_, total, err := f.notifications.FindAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestVerifyCompanyRequiresActiveAccount(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCompany(t, models.UserStatusPending, false)

	// Act
	err := f.service.VerifyCompany(user.ID)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doit être actif")
}

func TestVerifyCompanyAlreadyVerified(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCompany(t, models.UserStatusActive, true)

	// Act
	err := f.service.VerifyCompany(user.ID)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
}

func TestUnverifyCompany(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCompany(t, models.UserStatusActive, true)

	// Act
	require.NoError(t, f.service.UnverifyCompany(user.ID))

	// Assert
	profile, err := f.companies.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.False(t, profile.Verified)

	// A second unverify is refused.
	err = f.service.UnverifyCompany(user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n'est pas vérifiée")
}

func TestDeleteUserRemovesStoredFiles(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCandidate(t, models.UserStatusActive)
	user.CandidateProfile.Avatar = "avatars/a.jpg"
	user.CandidateProfile.Resume = "resumes/r.pdf"
	require.NoError(t, f.resets.Upsert(&models.PasswordResetCode{
		Email:     user.Email,
		Code:      "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	// Act
	err := f.service.DeleteUser(context.Background(), user.ID)

	// Assert
	require.NoError(t, err)
	_, findErr := f.users.FindByID(user.ID)
	assert.ErrorIs(t, findErr, repositories.ErrUserNotFound)
	assert.Contains(t, f.uploads.deleted, "avatars/a.jpg")
	assert.Contains(t, f.uploads.deleted, "resumes/r.pdf")

	// A pending reset code goes with the account.
	_, resetErr := f.resets.FindByEmail(user.Email)
	assert.Error(t, resetErr)
}

func TestBulkModerateReportsPerUserOutcome(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	pending := f.addCandidate(t, models.UserStatusPending)
	active := f.addCompany(t, models.UserStatusActive, false)

	// Act: the active account cannot be approved, the batch goes on.
	resp, err := f.service.BulkModerate(&dto.BulkModerateRequest{
		Action:  "approve",
		UserIDs: []string{pending.ID, active.ID},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.Empty(t, resp.Results[0].Error)
	assert.Contains(t, resp.Results[1].Error, "n'est pas en attente")

	approved, err := f.users.FindByID(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, approved.Status)
}

func TestBulkModerateReject(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	pending := f.addCandidate(t, models.UserStatusPending)

	// Act
	resp, err := f.service.BulkModerate(&dto.BulkModerateRequest{
		Action:  "reject",
		UserIDs: []string{pending.ID},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	rejected, err := f.users.FindByID(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusRejected, rejected.Status)
}

func TestApproveNotificationActivatesSubject(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCandidate(t, models.UserStatusPending)
	n := &models.Notification{
		Type:      models.NotificationCandidateRegistration,
		Text:      "Nouveau candidat inscrit : Marie Dupont",
		SubjectID: user.ID,
	}
	require.NoError(t, f.notifications.Create(n))

	// Act
	err := f.service.ApproveNotification(n.ID)

	// Assert
	require.NoError(t, err)
	updated, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, updated.Status)
	_, total, err := f.notifications.FindAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestApproveNotificationGrantsVerification(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCompany(t, models.UserStatusActive, false)
	n := &models.Notification{
		Type:      models.NotificationVerificationRequest,
		Text:      "Demande de vérification : Acme",
		SubjectID: user.ID,
	}
	require.NoError(t, f.notifications.Create(n))

	// Act
	err := f.service.ApproveNotification(n.ID)

	// Assert
	require.NoError(t, err)
	profile, err := f.companies.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.True(t, profile.Verified)
	_, total, err := f.notifications.FindAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestRejectNotificationVerificationKeepsAccount(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newAdminFixture(t)
	user := f.addCompany(t, models.UserStatusActive, false)
	n := &models.Notification{
		Type:      models.NotificationVerificationRequest,
		Text:      "Demande de vérification : Acme",
		SubjectID: user.ID,
	}
	require.NoError(t, f.notifications.Create(n))

	// Act: denying the request only removes the notification.
	err := f.service.RejectNotification(n.ID)

	// Assert
	require.NoError(t, err)
	updated, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, updated.Status)
	profile, err := f.companies.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.False(t, profile.Verified)
	_, total, err := f.notifications.FindAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestApproveNotificationUnknownID(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)

	err := f.service.ApproveNotification("b4a5ce35-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}
