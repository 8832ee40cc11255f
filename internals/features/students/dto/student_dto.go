package dto

import (
	"time"

	"github.com/google/uuid"

	m "coachingku_backend/internals/features/students/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateStudentRequest struct {
	StudentName    string `json:"student_name" validate:"required,max=120"`
	StudentRoll    string `json:"student_roll" validate:"required,max=20"`
	StudentClass   string `json:"student_class" validate:"required,max=20"`
	StudentSection string `json:"student_section" validate:"omitempty,max=20"`
	StudentGroup   string `json:"student_group" validate:"omitempty,max=40"`

	StudentPhone         string `json:"student_phone" validate:"omitempty,max=20"`
	StudentGuardianPhone string `json:"student_guardian_phone" validate:"omitempty,max=20"`
	StudentEmail         string `json:"student_email" validate:"omitempty,email"`

	StudentTotalFee float64 `json:"student_total_fee" validate:"omitempty,gte=0"`
	StudentPassword string  `json:"student_password" validate:"omitempty,min=6"`
}

func (r CreateStudentRequest) ToModel() *m.StudentModel {
	return &m.StudentModel{
		StudentName:          r.StudentName,
		StudentRoll:          r.StudentRoll,
		StudentClass:         r.StudentClass,
		StudentSection:       r.StudentSection,
		StudentGroup:         r.StudentGroup,
		StudentPhone:         r.StudentPhone,
		StudentGuardianPhone: r.StudentGuardianPhone,
		StudentEmail:         r.StudentEmail,
		StudentTotalFee:      r.StudentTotalFee,
		StudentIsActive:      true,
	}
}

// Update (partial JSON)
type UpdateStudentRequest struct {
	StudentName    *string `json:"student_name" validate:"omitempty,max=120"`
	StudentRoll    *string `json:"student_roll" validate:"omitempty,max=20"`
	StudentClass   *string `json:"student_class" validate:"omitempty,max=20"`
	StudentSection *string `json:"student_section" validate:"omitempty,max=20"`
	StudentGroup   *string `json:"student_group" validate:"omitempty,max=40"`

	StudentPhone         *string `json:"student_phone" validate:"omitempty,max=20"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,max=20"`
	StudentEmail         *string `json:"student_email" validate:"omitempty,email"`

	StudentTotalFee *float64 `json:"student_total_fee" validate:"omitempty,gte=0"`
	StudentIsActive *bool    `json:"student_is_active"`
	StudentPassword *string  `json:"student_password" validate:"omitempty,min=6"`
}

type FilterStudentRequest struct {
	Class   string `query:"class"`
	Section string `query:"section"`
	Group   string `query:"group"`
	Search  string `query:"search"`
	Active  *bool  `query:"active"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type StudentResponse struct {
	StudentId uuid.UUID `json:"student_id"`

	StudentName    string `json:"student_name"`
	StudentRoll    string `json:"student_roll"`
	StudentClass   string `json:"student_class"`
	StudentSection string `json:"student_section,omitempty"`
	StudentGroup   string `json:"student_group,omitempty"`

	StudentPhone         string `json:"student_phone,omitempty"`
	StudentGuardianPhone string `json:"student_guardian_phone,omitempty"`
	StudentEmail         string `json:"student_email,omitempty"`

	StudentTotalFee float64 `json:"student_total_fee"`
	StudentPaidFee  float64 `json:"student_paid_fee"`
	StudentDueFee   float64 `json:"student_due_fee"`
	StudentIsActive bool    `json:"student_is_active"`

	StudentCreatedAt time.Time `json:"student_created_at"`
}

func FromModel(s m.StudentModel) StudentResponse {
	return StudentResponse{
		StudentId:            s.StudentId,
		StudentName:          s.StudentName,
		StudentRoll:          s.StudentRoll,
		StudentClass:         s.StudentClass,
		StudentSection:       s.StudentSection,
		StudentGroup:         s.StudentGroup,
		StudentPhone:         s.StudentPhone,
		StudentGuardianPhone: s.StudentGuardianPhone,
		StudentEmail:         s.StudentEmail,
		StudentTotalFee:      s.StudentTotalFee,
		StudentPaidFee:       s.StudentPaidFee,
		StudentDueFee:        s.DueFee(),
		StudentIsActive:      s.StudentIsActive,
		StudentCreatedAt:     s.StudentCreatedAt,
	}
}

func FromModels(list []m.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromModel(s))
	}
	return out
}
