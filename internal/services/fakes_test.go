package services

import (
	"context"
	"io"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"growcoach_backend/internal/email"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
)

// In-memory fakes for the repository and provider interfaces.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	resets *fakeResetRepo // mirrors the delete cascade when set
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	r.mu.Lock()
	user, ok := r.users[userID]
	if !ok {
		r.mu.Unlock()
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	r.mu.Unlock()

	if r.resets != nil {
		return r.resets.DeleteByEmail(user.Email)
	}
	return nil
}

func (r *fakeUserRepo) FindWithFilter(filter repositories.UserFilter) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountByRole(role models.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) GetStats() (*repositories.UserStats, error) {
	return &repositories.UserStats{}, nil
}

type fakeCandidateRepo struct {
	mu        sync.Mutex
	profiles  map[string]*models.CandidateProfile // keyed by user ID
	createErr error
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{profiles: make(map[string]*models.CandidateProfile)}
}

func (r *fakeCandidateRepo) FindByUserID(userID string) (*models.CandidateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repositories.ErrCandidateProfileNotFound
}

func (r *fakeCandidateRepo) Create(profile *models.CandidateProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeCandidateRepo) Update(profile *models.CandidateProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeCandidateRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrCandidateProfileNotFound
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "avatar":
			p.Avatar = s
		case "resume":
			p.Resume = s
		case "admin_resume":
			p.AdminResume = s
		}
	}
	return nil
}

type fakeCompanyRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.CompanyProfile
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{profiles: make(map[string]*models.CompanyProfile)}
}

func (r *fakeCompanyRepo) FindByUserID(userID string) (*models.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repositories.ErrCompanyProfileNotFound
}

func (r *fakeCompanyRepo) Create(profile *models.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeCompanyRepo) Update(profile *models.CompanyProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeCompanyRepo) SetVerified(userID string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return repositories.ErrCompanyProfileNotFound
	}
	p.Verified = verified
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) FindAll(limit, offset int) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.notifications {
		if item.Unread {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.Unread = true
	clone := *n
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) MarkRead(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Unread = false
			now := time.Now()
			n.ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, n := range r.notifications {
		n.Unread = false
		n.ReadAt = &now
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notifications {
		if n.ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
	return nil
}

func (r *fakeNotificationRepo) DeleteBySubject(subjectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.SubjectID != subjectID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) DeleteBySubjectAndType(subjectID string, t models.NotificationType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if !(n.SubjectID == subjectID && n.Type == t) {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

type fakeResetRepo struct {
	mu    sync.Mutex
	codes map[string]*models.PasswordResetCode // keyed by email
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{codes: make(map[string]*models.PasswordResetCode)}
}

func (r *fakeResetRepo) Upsert(code *models.PasswordResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	clone := *code
	r.codes[code.Email] = &clone
	return nil
}

func (r *fakeResetRepo) FindByEmail(email string) (*models.PasswordResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.codes[email]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, repositories.ErrResetCodeNotFound
}

func (r *fakeResetRepo) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, email)
	return nil
}

func (r *fakeResetRepo) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for email, c := range r.codes {
		if c.ExpiresAt.Before(now) {
			delete(r.codes, email)
			n++
		}
	}
	return n, nil
}

type fakeBlacklistRepo struct {
	mu   sync.Mutex
	jtis map[string]time.Time
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{jtis: make(map[string]time.Time)}
}

func (r *fakeBlacklistRepo) Add(jti string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jtis[jti] = expiresAt
	return nil
}

func (r *fakeBlacklistRepo) IsBlacklisted(jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.jtis[jti]
	return ok, nil
}

func (r *fakeBlacklistRepo) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for jti, exp := range r.jtis {
		if exp.Before(now) {
			delete(r.jtis, jti)
			n++
		}
	}
	return n, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
	apps map[string]*models.JobApplication
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs: make(map[string]*models.Job),
		apps: make(map[string]*models.JobApplication),
	}
}

func (r *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		clone := *j
		return &clone, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *fakeJobRepo) Update(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *fakeJobRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(r.jobs, id)
	for appID, app := range r.apps {
		if app.JobID == id {
			delete(r.apps, appID)
		}
	}
	return nil
}

func (r *fakeJobRepo) FindWithFilter(filter repositories.JobFilter) ([]models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, j := range r.jobs {
		if filter.CompanyID != "" && j.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		out = append(out, *j)
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) CreateApplication(app *models.JobApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.CandidateID == app.CandidateID {
			return repositories.ErrDuplicateApplication
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.AppliedAt = time.Now()
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *fakeJobRepo) FindApplication(jobID, candidateID string) (*models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.JobID == jobID && app.CandidateID == candidateID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeJobRepo) FindApplicationsByJob(jobID string) ([]models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobApplication
	for _, app := range r.apps {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) FindApplicationsByCandidate(candidateID string) ([]models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobApplication
	for _, app := range r.apps {
		if app.CandidateID == candidateID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) UpdateApplicationStatus(id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	app.Status = status
	return nil
}

func (r *fakeJobRepo) CountApplicationsByJob(jobID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, app := range r.apps {
		if app.JobID == jobID {
			n++
		}
	}
	return n, nil
}

// fakeEmailProvider records sent messages; safe for concurrent use
// because services send asynchronously.
type fakeEmailProvider struct {
	mu         sync.Mutex
	resetCodes map[string]string // email -> code
	resetSends int
	welcomes   []string
	verified   []string
}

func newFakeEmailProvider() *fakeEmailProvider {
	return &fakeEmailProvider{resetCodes: make(map[string]string)}
}

func (p *fakeEmailProvider) Send(msg *email.Message) error { return nil }

func (p *fakeEmailProvider) SendResetCode(to, code string, validMinutes int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetCodes[to] = code
	p.resetSends++
	return nil
}

func (p *fakeEmailProvider) SendWelcome(to, displayName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.welcomes = append(p.welcomes, to)
	return nil
}

func (p *fakeEmailProvider) SendCompanyVerified(to, companyName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verified = append(p.verified, to)
	return nil
}

func (p *fakeEmailProvider) lastResetCode(to string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resetCodes[to]
}

func (p *fakeEmailProvider) resetSendCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resetSends
}

// fakeUploads returns predictable URLs and records deletions.
type fakeUploads struct {
	mu      sync.Mutex
	deleted []string
}

func newFakeUploads() *fakeUploads { return &fakeUploads{} }

func (u *fakeUploads) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	return "avatars/" + userID, nil
}

func (u *fakeUploads) UploadLogo(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	return "logos/" + userID, nil
}

func (u *fakeUploads) UploadResume(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	return "resumes/" + userID, nil
}

func (u *fakeUploads) UploadAdminResume(ctx context.Context, candidateUserID string, file *multipart.FileHeader) (string, error) {
	return "admin-resumes/" + candidateUserID, nil
}

func (u *fakeUploads) OpenFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("")), "application/octet-stream", nil
}

func (u *fakeUploads) FileURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	return "http://files.test/" + key
}

func (u *fakeUploads) SignedResumeURL(ctx context.Context, key string) (string, error) {
	return "http://files.test/signed/" + key, nil
}

func (u *fakeUploads) DeleteUserFiles(ctx context.Context, keys ...string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, keys...)
}

// openCooldown never throttles.
type openCooldown struct{}

func (openCooldown) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	return true, 0, nil
}

func (openCooldown) Clear(ctx context.Context, key string) error { return nil }
