package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"growcoach_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	FindByID(id string) (*models.Notification, error)
	FindAll(limit, offset int) ([]models.Notification, int64, error)
	CountUnread() (int64, error)
	Create(n *models.Notification) error
	MarkRead(id string) error
	MarkAllRead() error
	Delete(id string) error
	DeleteAll() error
	DeleteBySubject(subjectID string) error
	DeleteBySubjectAndType(subjectID string, t models.NotificationType) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) FindAll(limit, offset int) ([]models.Notification, int64, error) {
	var total int64
	if err := r.db.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var list []models.Notification
	if err := query.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *NotificationRepositoryImpl) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("unread = ?", true).Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepositoryImpl) MarkRead(id string) error {
	now := time.Now()
	result := r.db.Model(&models.Notification{}).Where("id = ?", id).Updates(map[string]interface{}{
		"unread":  false,
		"read_at": &now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead() error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).Where("unread = ?", true).Updates(map[string]interface{}{
		"unread":  false,
		"read_at": &now,
	}).Error
}

func (r *NotificationRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&models.Notification{}).Error
}

func (r *NotificationRepositoryImpl) DeleteBySubject(subjectID string) error {
	return r.db.Where("subject_id = ?", subjectID).Delete(&models.Notification{}).Error
}

func (r *NotificationRepositoryImpl) DeleteBySubjectAndType(subjectID string, t models.NotificationType) error {
	return r.db.Where("subject_id = ? AND type = ?", subjectID, t).Delete(&models.Notification{}).Error
}
