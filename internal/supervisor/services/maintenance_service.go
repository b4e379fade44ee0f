// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/metrics"
)

// MaintenanceTask is one periodic housekeeping step.
type MaintenanceTask struct {
	Name string
	Run  func(ctx context.Context) error
}

// MaintenanceService runs housekeeping tasks on a fixed interval.
// A failing task is logged and counted; it never stops the service.
type MaintenanceService struct {
	tasks    []MaintenanceTask
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
}

// NewMaintenanceService creates a maintenance service. Non-positive
// intervals default to one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(interval time.Duration, logger zerolog.Logger, tasks ...MaintenanceTask) *MaintenanceService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &MaintenanceService{
		tasks:    tasks,
		interval: interval,
		timeout:  interval,
		logger:   logger.With().Str("service", "maintenance").Logger(),
		name:     "maintenance-service",
	}
}

// Serve implements the suture.Service interface.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("tasks", len(s.tasks)).
		Dur("interval", s.interval).
		Msg("maintenance service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs every task once, each bounded by the interval.
func (s *MaintenanceService) RunOnce(ctx context.Context) {
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			return
		}

		taskCtx, cancel := context.WithTimeout(ctx, s.timeout)
		start := time.Now()
		err := task.Run(taskCtx)
		cancel()

		if err != nil {
			metrics.MaintenanceRuns.WithLabelValues(task.Name, "error").Inc()
			s.logger.Warn().Err(err).Str("task", task.Name).Msg("maintenance task failed")
			continue
		}
		metrics.MaintenanceRuns.WithLabelValues(task.Name, "success").Inc()
		s.logger.Debug().
			Str("task", task.Name).
			Dur("duration", time.Since(start)).
			Msg("maintenance task complete")
	}
}

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}
