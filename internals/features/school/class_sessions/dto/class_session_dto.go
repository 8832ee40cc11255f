package dto

import (
	"time"

	m "coachingku_backend/internals/features/school/class_sessions/model"
)

type CreateClassSessionRequest struct {
	ClassSessionClass   string `json:"class_session_class" validate:"required,max=20"`
	ClassSessionSection string `json:"class_session_section" validate:"omitempty,max=20"`
	ClassSessionSubject string `json:"class_session_subject" validate:"required,max=60"`
	ClassSessionTopic   string `json:"class_session_topic" validate:"omitempty,max=200"`

	ClassSessionDate      time.Time `json:"class_session_date" validate:"required"`
	ClassSessionStartTime string    `json:"class_session_start_time" validate:"required,len=5"`
	ClassSessionEndTime   string    `json:"class_session_end_time" validate:"required,len=5"`
}

func (r CreateClassSessionRequest) ToModel() *m.ClassSessionModel {
	return &m.ClassSessionModel{
		ClassSessionClass:     r.ClassSessionClass,
		ClassSessionSection:   r.ClassSessionSection,
		ClassSessionSubject:   r.ClassSessionSubject,
		ClassSessionTopic:     r.ClassSessionTopic,
		ClassSessionDate:      r.ClassSessionDate,
		ClassSessionStartTime: r.ClassSessionStartTime,
		ClassSessionEndTime:   r.ClassSessionEndTime,
		ClassSessionStatus:    m.StatusScheduled,
	}
}

type RescheduleClassSessionRequest struct {
	ClassSessionDate      time.Time `json:"class_session_date" validate:"required"`
	ClassSessionStartTime string    `json:"class_session_start_time" validate:"required,len=5"`
	ClassSessionEndTime   string    `json:"class_session_end_time" validate:"required,len=5"`
}

type FilterClassSessionRequest struct {
	Class   string `query:"class"`
	Section string `query:"section"`
	Status  string `query:"status"`
	From    string `query:"from"` // yyyy-mm-dd
	To      string `query:"to"`
}
