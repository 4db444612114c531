package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"growcoach_backend/internal/imageprocessor"
	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/storage"
	"growcoach_backend/pkg/apperrors"
)

var (
	imageExtensions  = map[string]string{".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png"}
	resumeExtensions = map[string]string{
		".pdf":  "application/pdf",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
)

type UploadService interface {
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
	UploadLogo(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
	UploadResume(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
	UploadAdminResume(ctx context.Context, candidateUserID string, file *multipart.FileHeader) (string, error)
	OpenFile(ctx context.Context, key string) (io.ReadCloser, string, error)
	FileURL(ctx context.Context, key string) string
	SignedResumeURL(ctx context.Context, key string) (string, error)
	DeleteUserFiles(ctx context.Context, keys ...string)
}

type UploadServiceImpl struct {
	store         storage.Storage
	processor     *imageprocessor.Processor
	candidateRepo repositories.CandidateProfileRepository
	companyRepo   repositories.CompanyProfileRepository
	maxSize       int64
}

func NewUploadService(
	store storage.Storage,
	processor *imageprocessor.Processor,
	candidateRepo repositories.CandidateProfileRepository,
	companyRepo repositories.CompanyProfileRepository,
	maxSize int64,
) UploadService {
	return &UploadServiceImpl{
		store:         store,
		processor:     processor,
		candidateRepo: candidateRepo,
		companyRepo:   companyRepo,
		maxSize:       maxSize,
	}
}

func (s *UploadServiceImpl) checkFile(file *multipart.FileHeader, allowed map[string]string) (string, string, error) {
	if file.Size > s.maxSize {
		return "", "", apperrors.ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowed[ext]
	if !ok {
		return "", "", apperrors.ErrFileTypeNotAllowed
	}
	return ext, contentType, nil
}

func (s *UploadServiceImpl) saveImage(ctx context.Context, file *multipart.FileHeader, dir string, size imageprocessor.ImageSize) (string, error) {
	ext, _, err := s.checkFile(file, imageExtensions)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	processed, contentType, err := s.processor.Process(src, size)
	if err != nil {
		return "", apperrors.ErrFileTypeNotAllowed
	}

	key := fmt.Sprintf("%s/%s%s", dir, uuid.NewString(), ext)
	if err := s.store.Save(ctx, key, processed, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	return key, nil
}

func (s *UploadServiceImpl) saveResume(ctx context.Context, file *multipart.FileHeader, dir string) (string, error) {
	ext, contentType, err := s.checkFile(file, resumeExtensions)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s%s", dir, uuid.NewString(), ext)
	if err := s.store.Save(ctx, key, src, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	return key, nil
}

func (s *UploadServiceImpl) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return "", apperrors.ErrCandidateNotFound
	}

	key, err := s.saveImage(ctx, file, "avatars", imageprocessor.SizeAvatar)
	if err != nil {
		return "", err
	}

	old := profile.Avatar
	if err := s.candidateRepo.UpdateFields(userID, map[string]interface{}{"avatar": key}); err != nil {
		s.DeleteUserFiles(ctx, key)
		return "", apperrors.InternalError(err)
	}
	s.DeleteUserFiles(ctx, old)
	return key, nil
}

func (s *UploadServiceImpl) UploadLogo(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	profile, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		return "", apperrors.ErrCompanyNotFound
	}

	key, err := s.saveImage(ctx, file, "logos", imageprocessor.SizeLogo)
	if err != nil {
		return "", err
	}

	old := profile.Logo
	profile.Logo = key
	if err := s.companyRepo.Update(profile); err != nil {
		s.DeleteUserFiles(ctx, key)
		return "", apperrors.InternalError(err)
	}
	s.DeleteUserFiles(ctx, old)
	return key, nil
}

func (s *UploadServiceImpl) UploadResume(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return "", apperrors.ErrCandidateNotFound
	}

	key, err := s.saveResume(ctx, file, "resumes")
	if err != nil {
		return "", err
	}

	old := profile.Resume
	if err := s.candidateRepo.UpdateFields(userID, map[string]interface{}{"resume": key}); err != nil {
		s.DeleteUserFiles(ctx, key)
		return "", apperrors.InternalError(err)
	}
	s.DeleteUserFiles(ctx, old)
	return key, nil
}

// UploadAdminResume stores a CV curated by an administrator for the
// candidate, kept separate from the candidate's own upload.
func (s *UploadServiceImpl) UploadAdminResume(ctx context.Context, candidateUserID string, file *multipart.FileHeader) (string, error) {
	profile, err := s.candidateRepo.FindByUserID(candidateUserID)
	if err != nil {
		return "", apperrors.ErrCandidateNotFound
	}

	key, err := s.saveResume(ctx, file, "admin-resumes")
	if err != nil {
		return "", err
	}

	old := profile.AdminResume
	if err := s.candidateRepo.UpdateFields(candidateUserID, map[string]interface{}{"admin_resume": key}); err != nil {
		s.DeleteUserFiles(ctx, key)
		return "", apperrors.InternalError(err)
	}
	s.DeleteUserFiles(ctx, old)
	return key, nil
}

func (s *UploadServiceImpl) OpenFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	reader, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, "", apperrors.NewNotFoundError("upload", "Fichier introuvable.")
	}

	contentType := "application/octet-stream"
	ext := strings.ToLower(filepath.Ext(key))
	if ct, ok := imageExtensions[ext]; ok {
		contentType = ct
	} else if ct, ok := resumeExtensions[ext]; ok {
		contentType = ct
	}
	return reader, contentType, nil
}

func (s *UploadServiceImpl) FileURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return ""
	}
	return url
}

func (s *UploadServiceImpl) SignedResumeURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", apperrors.NewNotFoundError("upload", "Fichier introuvable.")
	}
	url, err := s.store.GetSignedURL(ctx, key, 15*time.Minute)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

// DeleteUserFiles removes storage objects, ignoring empty keys.
func (s *UploadServiceImpl) DeleteUserFiles(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warn("failed to delete stored file", "key", key, "error", err)
		}
	}
}
