package scheduler

import (
	"errors"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrEmptyJobName = errors.New("job name is required")

// Service wraps a gocron scheduler for app-wide scheduling.
type Service struct {
	scheduler gocron.Scheduler
}

// New creates the scheduler with panic logging on every job.
func New() (*Service, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Scheduler job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Scheduler initialized")
	return &Service{scheduler: sched}, nil
}

// RegisterDaily schedules task once a day at the given hour and minute.
func (s *Service) RegisterDaily(name string, hour, minute int, task func()) error {
	if name == "" {
		return ErrEmptyJobName
	}
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}
	log.Info().Str("job_name", name).Int("hour", hour).Int("minute", minute).Msg("Scheduled daily job")
	return nil
}

// Start begins running scheduled jobs.
func (s *Service) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Service) Stop() error {
	return s.scheduler.Shutdown()
}
