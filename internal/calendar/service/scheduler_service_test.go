package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-event-calendar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerService_RegisterAndRunNow(t *testing.T) {
	svc := NewSchedulerService(nil, testLogger, time.UTC)

	runs := 0
	require.NoError(t, svc.Register(Job{Name: "catalog-refresh", Schedule: "@every 5m", Run: func(context.Context) error {
		runs++
		return nil
	}}))
	require.NoError(t, svc.Register(Job{Name: "digest", Schedule: "0 7 * * 1-5", Run: func(context.Context) error {
		return errors.New("telegram unavailable")
	}}))

	assert.Error(t, svc.Register(Job{Name: "digest", Schedule: "@daily", Run: func(context.Context) error { return nil }}))
	assert.Error(t, svc.Register(Job{Name: "broken", Schedule: "whenever", Run: func(context.Context) error { return nil }}))

	require.NoError(t, svc.RunNow(context.Background(), "catalog-refresh"))
	assert.EqualError(t, svc.RunNow(context.Background(), "digest"), "telegram unavailable")
	assert.ErrorIs(t, svc.RunNow(context.Background(), "missing"), ErrNotFound)
	assert.Equal(t, 1, runs)

	jobs := svc.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "catalog-refresh", jobs[0].Name)
	assert.Equal(t, 1, jobs[0].Runs)
	assert.NotNil(t, jobs[0].LastRun)
	assert.Equal(t, "digest", jobs[1].Name)
	assert.Equal(t, 1, jobs[1].Failures)
	assert.Equal(t, "telegram unavailable", jobs[1].LastError)
}

func TestSchedulerService_RecoversPanics(t *testing.T) {
	svc := NewSchedulerService(nil, testLogger, time.UTC)
	require.NoError(t, svc.Register(Job{Name: "boom", Schedule: "@hourly", Run: func(context.Context) error {
		panic("bad state")
	}}))

	err := svc.RunNow(context.Background(), "boom")
	assert.EqualError(t, err, "job boom panicked: bad state")
}

func TestSchedulerService_StartStopsWithContext(t *testing.T) {
	svc := NewSchedulerService(nil, testLogger, time.UTC)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

type fakeJobExecutionRepo struct {
	created []entity.JobExecution
	err     error
}

func (f *fakeJobExecutionRepo) Create(ctx context.Context, execution *entity.JobExecution) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	f.created = append(f.created, *execution)
	return f.err
}

func (f *fakeJobExecutionRepo) FindByJob(_ context.Context, jobName string, limit int) ([]entity.JobExecution, error) {
	var out []entity.JobExecution
	for i := len(f.created) - 1; i >= 0 && len(out) < limit; i-- {
		if f.created[i].JobName == jobName {
			out = append(out, f.created[i])
		}
	}
	return out, nil
}

func TestSchedulerService_RecordsExecutions(t *testing.T) {
	history := &fakeJobExecutionRepo{}
	svc := NewSchedulerService(history, testLogger, time.UTC)

	fail := false
	require.NoError(t, svc.Register(Job{Name: "catalog-refresh", Schedule: "@every 5m", Run: func(context.Context) error {
		if fail {
			return errors.New("db down")
		}
		return nil
	}}))

	require.NoError(t, svc.RunNow(context.Background(), "catalog-refresh"))
	fail = true
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, svc.RunNow(canceled, "catalog-refresh"))

	runs, err := svc.Executions(context.Background(), "catalog-refresh", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, entity.JobExecutionFailed, runs[0].Status)
	require.NotNil(t, runs[0].ErrorMessage)
	assert.Equal(t, "db down", *runs[0].ErrorMessage)
	assert.Equal(t, entity.JobTriggerManual, runs[0].TriggeredBy)
	assert.Equal(t, entity.JobExecutionSuccess, runs[1].Status)

	_, err = svc.Executions(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchedulerService_ExecutionsWithoutHistory(t *testing.T) {
	svc := NewSchedulerService(nil, testLogger, time.UTC)
	require.NoError(t, svc.Register(Job{Name: "noop", Schedule: "@hourly", Run: func(context.Context) error { return nil }}))

	runs, err := svc.Executions(context.Background(), "noop", 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
