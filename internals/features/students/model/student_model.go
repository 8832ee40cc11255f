package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	StudentName    string `gorm:"not null;column:student_name" json:"student_name"`
	StudentRoll    string `gorm:"not null;uniqueIndex:uq_student_roll_class,where:student_deleted_at IS NULL;column:student_roll" json:"student_roll"`
	StudentClass   string `gorm:"not null;index;uniqueIndex:uq_student_roll_class,where:student_deleted_at IS NULL;column:student_class" json:"student_class"`
	StudentSection string `gorm:"index;column:student_section" json:"student_section"`
	StudentGroup   string `gorm:"column:student_group" json:"student_group"`

	StudentPhone         string `gorm:"column:student_phone" json:"student_phone"`
	StudentGuardianPhone string `gorm:"column:student_guardian_phone" json:"student_guardian_phone"`
	StudentEmail         string `gorm:"column:student_email" json:"student_email"`

	// fee ledger; due is derived (total − paid), never stored
	StudentTotalFee float64 `gorm:"default:0;column:student_total_fee" json:"student_total_fee"`
	StudentPaidFee  float64 `gorm:"default:0;column:student_paid_fee" json:"student_paid_fee"`

	StudentPasswordHash string `gorm:"column:student_password_hash" json:"-"`
	StudentIsActive     bool   `gorm:"default:true;column:student_is_active" json:"student_is_active"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

// DueFee derives the outstanding amount from the ledger.
func (s StudentModel) DueFee() float64 {
	due := s.StudentTotalFee - s.StudentPaidFee
	if due < 0 {
		return 0
	}
	return due
}
