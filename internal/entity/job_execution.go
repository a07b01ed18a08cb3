package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobExecutionStatus is the outcome of one background job run.
type JobExecutionStatus string

const (
	JobExecutionSuccess JobExecutionStatus = "success"
	JobExecutionFailed  JobExecutionStatus = "failed"
)

// JobTrigger records what started a run.
type JobTrigger string

const (
	JobTriggerSchedule JobTrigger = "schedule"
	JobTriggerManual   JobTrigger = "manual"
)

// JobExecution is one recorded run of a scheduled job.
type JobExecution struct {
	ID           string             `gorm:"type:uuid;primaryKey" json:"id"`
	JobName      string             `gorm:"not null;index" json:"job_name"`
	TriggeredBy  JobTrigger         `gorm:"not null" json:"triggered_by"`
	Status       JobExecutionStatus `gorm:"not null" json:"status"`
	StartedAt    time.Time          `gorm:"not null" json:"started_at"`
	DurationMs   int64              `gorm:"not null;default:0" json:"duration_ms"`
	ErrorMessage *string            `json:"error_message,omitempty"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

func (JobExecution) TableName() string {
	return "job_executions"
}

func (j *JobExecution) BeforeCreate(_ *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
