package repository

import (
	"context"

	"stock-event-calendar/internal/entity"

	"gorm.io/gorm"
)

// JobExecutionRepository stores the run history of scheduled jobs.
type JobExecutionRepository interface {
	Create(ctx context.Context, execution *entity.JobExecution) error
	FindByJob(ctx context.Context, jobName string, limit int) ([]entity.JobExecution, error)
}

// NewJobExecutionRepository creates a new GORM-based job execution repository.
func NewJobExecutionRepository(db *gorm.DB) JobExecutionRepository {
	return &jobExecutionRepository{db: db}
}

type jobExecutionRepository struct {
	db *gorm.DB
}

// Create records one job run.
func (r *jobExecutionRepository) Create(ctx context.Context, execution *entity.JobExecution) error {
	return r.db.WithContext(ctx).Create(execution).Error
}

// FindByJob returns the most recent runs of a job, newest first.
func (r *jobExecutionRepository) FindByJob(ctx context.Context, jobName string, limit int) ([]entity.JobExecution, error) {
	var executions []entity.JobExecution
	if err := r.db.WithContext(ctx).
		Where("job_name = ?", jobName).
		Order("started_at desc").
		Limit(limit).
		Find(&executions).Error; err != nil {
		return nil, err
	}
	return executions, nil
}
