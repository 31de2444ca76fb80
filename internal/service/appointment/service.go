package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
	"github.com/beautycare/scheduling-api/pkg/messaging"
	"github.com/beautycare/scheduling-api/pkg/metrics"
)

const eventChannel = "appointments"

// Event types published on the appointments channel.
const (
	EventCreated = "appointment_created"
	EventUpdated = "appointment_updated"
	EventDeleted = "appointment_deleted"
)

type Service struct {
	repo    repository.AppointmentRepository
	lines   repository.AppointmentLineRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  *zerolog.Logger
}

// NewService wires the appointment aggregate. The broker is optional; when
// nil, lifecycle events are not published.
func NewService(repo repository.AppointmentRepository, lines repository.AppointmentLineRepository,
	broker messaging.Broker, m *metrics.Metrics, logger *zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		lines:   lines,
		broker:  broker,
		metrics: m,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if apt == nil {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return apt, nil
}

// Create writes the header and every service line in one transaction and
// returns the new appointment ID. Duplicate service IDs are passed through
// untouched; the store decides whether they collapse into quantity bumps.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (int, error) {
	if err := validateTimes(&req.AppointmentHeader); err != nil {
		return 0, apperrors.BadRequest(err.Error(), err)
	}

	id, err := s.repo.Create(ctx, &req.AppointmentHeader, req.ServiceIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.publish(ctx, EventCreated, map[string]interface{}{"id": id})
	return id, nil
}

// Update replaces the header and the full service line set. Returns the
// number of affected header rows.
func (s *Service) Update(ctx context.Context, id int, req *model.CreateAppointmentRequest) (int, error) {
	if err := validateTimes(&req.AppointmentHeader); err != nil {
		return 0, apperrors.BadRequest(err.Error(), err)
	}

	affected, err := s.repo.Update(ctx, id, &req.AppointmentHeader, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.NotFound("appointment", err)
		}
		return 0, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.publish(ctx, EventUpdated, map[string]interface{}{"id": id})
	return affected, nil
}

// Delete removes the appointment and its lines. Zero affected rows means
// the appointment did not exist.
func (s *Service) Delete(ctx context.Context, id int) (int, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete appointment: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("appointment", nil)
	}

	s.publish(ctx, EventDeleted, map[string]interface{}{"id": id})
	return affected, nil
}

// BasicLines lists raw appointment-service pairs, optionally filtered by
// either side of the pair.
func (s *Service) BasicLines(ctx context.Context, appointmentID, serviceID *int) ([]*model.AppointmentLine, error) {
	lines, err := s.lines.List(ctx, appointmentID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment services: %w", err)
	}
	return lines, nil
}

func (s *Service) Lines(ctx context.Context, appointmentID int, serviceID *int) ([]*model.AppointmentLineDetail, error) {
	lines, err := s.lines.ListDetailed(ctx, appointmentID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment lines: %w", err)
	}
	return lines, nil
}

func (s *Service) Total(ctx context.Context, appointmentID int) (float64, error) {
	total, err := s.lines.Total(ctx, appointmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute appointment total: %w", err)
	}
	return total, nil
}

// AddLine attaches one service to the appointment. The store bumps the
// quantity when the pair already exists; the result code distinguishes the
// two outcomes.
func (s *Service) AddLine(ctx context.Context, appointmentID int, req *model.AddLineRequest) (int, error) {
	result, err := s.lines.Insert(ctx, appointmentID, req.ServiceID, req.Quantity, req.UnitPrice)
	if err != nil {
		return 0, fmt.Errorf("failed to add appointment line: %w", err)
	}
	return result, nil
}

func (s *Service) RemoveLine(ctx context.Context, appointmentID, serviceID int) (int, error) {
	affected, err := s.lines.Delete(ctx, appointmentID, serviceID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove appointment line: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("appointment service", nil)
	}
	return affected, nil
}

// ReplaceLines swaps the appointment's line set for the given service IDs
// and returns the accumulated result codes.
func (s *Service) ReplaceLines(ctx context.Context, appointmentID int, serviceIDs []int) (int, error) {
	total, err := s.lines.ReplaceAll(ctx, appointmentID, serviceIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to replace appointment lines: %w", err)
	}
	return total, nil
}

func validateTimes(h *model.AppointmentHeader) error {
	if h.EndTime != nil && h.EndTime.Before(h.StartTime) {
		return fmt.Errorf("end_time must not be before start_time")
	}
	return nil
}

// publish sends a lifecycle event; failures are logged, never surfaced.
func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	err := s.broker.Publish(ctx, eventChannel, messaging.Message{Type: eventType, Payload: payload})
	if s.metrics != nil {
		s.metrics.ObservePublish(eventType, err)
	}
	if err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}
