package service

import (
	"time"

	"coachingku_backend/internals/features/notifications/model"
	"coachingku_backend/internals/logger"
)

// DrainScheduled dispatches stored notifications whose scheduledFor has
// passed, clearing the flag so each fires once.
func (s *Service) DrainScheduled() (int, error) {
	var due []model.NotificationModel
	err := s.DB.
		Where("notification_is_scheduled = true AND notification_scheduled_for <= ?", time.Now()).
		Limit(200).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	for i := range due {
		n := &due[i]
		if err := s.DB.Model(n).Update("notification_is_scheduled", false).Error; err != nil {
			logger.Log.WithError(err).Warn("scheduled notification flag clear failed")
			continue
		}
		s.Dispatch(n, AllChannels())
	}
	return len(due), nil
}

// PurgeOld hard-deletes notifications older than the retention window,
// read or not.
func (s *Service) PurgeOld(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res := s.DB.
		Where("notification_created_at < ?", cutoff).
		Delete(&model.NotificationModel{})
	return res.RowsAffected, res.Error
}
