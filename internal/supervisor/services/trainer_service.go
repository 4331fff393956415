// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

// Trainer defaults.
const (
	DefaultTrainInterval = time.Hour
	DefaultTrainTimeout  = 30 * time.Minute
)

// Trainer fits the recommender's latent factors.
type Trainer interface {
	Train(ctx context.Context) (*recommend.TrainingResult, error)
}

// TrainerConfig controls the training schedule.
type TrainerConfig struct {
	// TrainOnStartup runs one training pass before the first tick.
	TrainOnStartup bool

	// Interval between scheduled runs. Default: 1h
	Interval time.Duration

	// Timeout bounds a single run. Default: 30m
	Timeout time.Duration
}

// TrainerService retrains the recommender on a schedule.
type TrainerService struct {
	trainer Trainer
	config  TrainerConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainerService creates a trainer service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainerService(trainer Trainer, cfg TrainerConfig, logger zerolog.Logger) *TrainerService {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTrainInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTrainTimeout
	}
	return &TrainerService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "trainer").Logger(),
		name:    "recommend-trainer",
	}
}

// Serve implements suture.Service. Training failures are logged and retried
// on the next tick; they never restart the service.
func (s *TrainerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("interval", s.config.Interval).
		Msg("trainer starting")

	if s.config.TrainOnStartup {
		s.train(ctx, "startup")
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trainer shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.train(ctx, "scheduled")
		}
	}
}

func (s *TrainerService) train(ctx context.Context, trigger string) {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	// One correlation ID per run ties this log line to the recommender's.
	trainCtx = logging.ContextWithNewCorrelationID(trainCtx)
	logger := logging.CtxWith(logging.ContextWithLogger(trainCtx, s.logger)).
		Str("trigger", trigger).
		Logger()

	res, err := s.trainer.Train(trainCtx)
	switch {
	case errors.Is(err, recommend.ErrTrainingInProgress):
		logger.Debug().Msg("training already running, skipping")
	case err != nil:
		logger.Warn().Err(err).Msg("training failed, will retry on schedule")
	case res.Insufficient:
		// The recommender already warned about the sample count.
		logger.Debug().Int("samples", res.Samples).Msg("training skipped")
	default:
		logger.Info().
			Int("samples", res.Samples).
			Int("version", res.Version).
			Float64("rmse", res.RMSE).
			Dur("duration", res.Duration).
			Msg("model training complete")
	}
}

// String implements fmt.Stringer.
func (s *TrainerService) String() string {
	return s.name
}
