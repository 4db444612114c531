package services

import (
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type NotificationService interface {
	List(limit, offset int) (*dto.NotificationListResponse, error)
	MarkRead(id string) error
	MarkAllRead() error
	Delete(id string) error
	Clear() error
	DeleteBySubject(subjectID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) List(limit, offset int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindAll(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.CountUnread()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
	}, nil
}

func (s *NotificationServiceImpl) MarkRead(id string) error {
	if err := s.notificationRepo.MarkRead(id); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead() error {
	if err := s.notificationRepo.MarkAllRead(); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) Delete(id string) error {
	if err := s.notificationRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) Clear() error {
	if err := s.notificationRepo.DeleteAll(); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) DeleteBySubject(subjectID string) error {
	if err := s.notificationRepo.DeleteBySubject(subjectID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
