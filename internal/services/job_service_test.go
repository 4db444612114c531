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

type jobFixture struct {
	service    JobService
	jobs       *fakeJobRepo
	users      *fakeUserRepo
	candidates *fakeCandidateRepo
	companies  *fakeCompanyRepo
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()

	f := &jobFixture{
		jobs:       newFakeJobRepo(),
		users:      newFakeUserRepo(),
		candidates: newFakeCandidateRepo(),
		companies:  newFakeCompanyRepo(),
	}
	f.service = NewJobService(f.jobs, f.users, f.candidates, f.companies, newFakeUploads())
	return f
}

func (f *jobFixture) addJob(t *testing.T, companyID string, status models.JobStatus) *models.Job {
	t.Helper()

	job := &models.Job{
		CompanyID:   companyID,
		Title:       "Développeur Go",
		Description: "Backend",
		Status:      status,
	}
	require.NoError(t, f.jobs.Create(job))
	return job
}

func TestCreateJobStartsActive(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)

	// Act
	job, err := f.service.Create("company-1", &dto.CreateJobRequest{
		Title:          "Développeur Go",
		Description:    "Backend",
		Location:       "Paris",
		RequiredSkills: []string{"go", "postgres"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, "company-1", job.CompanyID)

	stored, err := f.jobs.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Développeur Go", stored.Title)
}

func TestUpdateJobRequiresOwner(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusActive)
	title := "Nouveau titre"

	// Act
	_, err := f.service.Update("company-2", job.ID, &dto.UpdateJobRequest{Title: &title})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
	unchanged, findErr := f.jobs.FindByID(job.ID)
	require.NoError(t, findErr)
	assert.Equal(t, "Développeur Go", unchanged.Title)
}

func TestUpdateJobMergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusActive)
	status := string(models.JobStatusInactive)

	// Act
	updated, err := f.service.Update("company-1", job.ID, &dto.UpdateJobRequest{Status: &status})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInactive, updated.Status)
	assert.Equal(t, "Développeur Go", updated.Title)
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusActive)

	// Act
	app, err := f.service.Apply("candidate-1", job.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Equal(t, "candidate-1", app.CandidateID)
}

func TestApplyTwiceIsRefused(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusActive)
	_, err := f.service.Apply("candidate-1", job.ID)
	require.NoError(t, err)

	// Act
	_, err = f.service.Apply("candidate-1", job.ID)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestApplyToInactiveJob(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusInactive)

	// Act
	_, err := f.service.Apply("candidate-1", job.ID)

	// Assert: an inactive posting is invisible to candidates.
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestApplicationsForJobGatedByOwnership(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusActive)
	_, err := f.service.Apply("candidate-1", job.ID)
	require.NoError(t, err)

	// Act + Assert: owner sees the application, another company does not.
	apps, err := f.service.ApplicationsForJob(context.Background(), "company-1", job.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = f.service.ApplicationsForJob(context.Background(), "company-2", job.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)
}

func TestUpdateApplicationStatusOwnJobsOnly(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusActive)
	app, err := f.service.Apply("candidate-1", job.ID)
	require.NoError(t, err)

	// Act: the owner accepts the application.
	require.NoError(t, f.service.UpdateApplicationStatus("company-1", app.ID, models.ApplicationStatusAccepted))

	// Assert
	stored, err := f.jobs.FindApplication(job.ID, "candidate-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status)

	// Another company cannot touch it.
	err = f.service.UpdateApplicationStatus("company-2", app.ID, models.ApplicationStatusRejected)
	require.Error(t, err)
}

func TestDeleteJobRemovesApplications(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newJobFixture(t)
	job := f.addJob(t, "company-1", models.JobStatusActive)
	_, err := f.service.Apply("candidate-1", job.ID)
	require.NoError(t, err)

	// Act
	require.NoError(t, f.service.Delete("company-1", job.ID))

	// Assert
	_, err = f.jobs.FindByID(job.ID)
	assert.Error(t, err)
	_, err = f.jobs.FindApplication(job.ID, "candidate-1")
	assert.Error(t, err)
}
