package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stock-event-calendar/internal/calendar/dto"
	"stock-event-calendar/internal/calendar/repository"
	"stock-event-calendar/internal/entity"
	"stock-event-calendar/pkg/logger"
	"stock-event-calendar/pkg/utils"

	"github.com/robfig/cron/v3"
)

// Job is a named background task.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// SchedulerService runs background jobs on cron schedules and keeps their
// run history.
type SchedulerService interface {
	Register(job Job) error
	Start(ctx context.Context)
	RunNow(ctx context.Context, name string) error
	Jobs() []dto.JobStatus
	Executions(ctx context.Context, name string, limit int) ([]entity.JobExecution, error)
}

const (
	defaultExecutionLimit = 20
	maxExecutionLimit     = 100
)

// NewSchedulerService creates a new scheduler service. A nil history keeps
// run counters in memory only.
func NewSchedulerService(history repository.JobExecutionRepository, log *logger.Logger, loc *time.Location) SchedulerService {
	if loc == nil {
		loc = time.UTC
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &schedulerService{
		cron:    cron.New(cron.WithParser(parser), cron.WithLocation(loc)),
		jobs:    map[string]*jobEntry{},
		history: history,
		logger:  log,
		now:     time.Now,
	}
}

type jobEntry struct {
	job     Job
	entryID cron.EntryID
	status  dto.JobStatus
}

type schedulerService struct {
	mu      sync.Mutex
	cron    *cron.Cron
	jobs    map[string]*jobEntry
	history repository.JobExecutionRepository
	ctx     context.Context
	logger  *logger.Logger
	now     func() time.Time
}

// Register adds job to the schedule. Names must be unique.
func (s *schedulerService) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("job %q already registered", job.Name)
	}
	entry := &jobEntry{job: job, status: dto.JobStatus{Name: job.Name, Schedule: job.Schedule}}
	id, err := s.cron.AddFunc(job.Schedule, func() { _ = s.execute(s.runContext(), entry, entity.JobTriggerSchedule) })
	if err != nil {
		return fmt.Errorf("schedule job %q: %w", job.Name, err)
	}
	entry.entryID = id
	s.jobs[job.Name] = entry
	s.logger.Info("Job registered", logger.StringField("job", job.Name), logger.StringField("schedule", job.Schedule))
	return nil
}

func (s *schedulerService) runContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// Start runs the cron loop until ctx is done, then waits for running jobs.
func (s *schedulerService) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Scheduler started", logger.IntField("jobs", len(s.cron.Entries())))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler service stopping")
}

// RunNow executes a registered job synchronously.
func (s *schedulerService) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	entry, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return notFound("Job %q not found", name)
	}
	return s.execute(ctx, entry, entity.JobTriggerManual)
}

func (s *schedulerService) execute(ctx context.Context, entry *jobEntry, trigger entity.JobTrigger) (err error) {
	start := s.now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", entry.job.Name, r)
		}
		s.record(entry, start, err)
		s.persist(ctx, entry.job.Name, trigger, start, err)
	}()
	return entry.job.Run(ctx)
}

// persist writes the run to history, even when ctx is already canceled.
func (s *schedulerService) persist(ctx context.Context, name string, trigger entity.JobTrigger, start time.Time, runErr error) {
	if s.history == nil {
		return
	}
	execution := &entity.JobExecution{
		JobName:     name,
		TriggeredBy: trigger,
		Status:      entity.JobExecutionSuccess,
		StartedAt:   start,
		DurationMs:  s.now().Sub(start).Milliseconds(),
	}
	if runErr != nil {
		execution.Status = entity.JobExecutionFailed
		execution.ErrorMessage = utils.ToPointer(runErr.Error())
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.history.Create(writeCtx, execution); err != nil {
		s.logger.Error("Failed to record job execution", logger.ErrorField(err), logger.StringField("job", name))
	}
}

func (s *schedulerService) record(entry *jobEntry, start time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.status.Runs++
	entry.status.LastRun = utils.ToPointer(start)
	entry.status.LastError = ""
	if err != nil {
		entry.status.Failures++
		entry.status.LastError = err.Error()
		s.logger.Error("Job failed", logger.ErrorField(err), logger.StringField("job", entry.job.Name))
		return
	}
	s.logger.Debug("Job completed",
		logger.StringField("job", entry.job.Name),
		logger.Field("duration", time.Since(start).String()),
	)
}

// Jobs lists registered jobs by name with their next scheduled run.
func (s *schedulerService) Jobs() []dto.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]dto.JobStatus, 0, len(s.jobs))
	for _, entry := range s.jobs {
		status := entry.status
		if next := s.cron.Entry(entry.entryID).Next; !next.IsZero() {
			status.NextRun = utils.ToPointer(next)
		}
		out = append(out, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Executions returns the most recent recorded runs of a registered job.
func (s *schedulerService) Executions(ctx context.Context, name string, limit int) ([]entity.JobExecution, error) {
	s.mu.Lock()
	_, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return nil, notFound("Job %q not found", name)
	}
	if s.history == nil {
		return []entity.JobExecution{}, nil
	}

	if limit <= 0 {
		limit = defaultExecutionLimit
	}
	if limit > maxExecutionLimit {
		limit = maxExecutionLimit
	}
	return s.history.FindByJob(ctx, name, limit)
}
