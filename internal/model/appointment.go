package model

import (
	"strings"
	"time"
)

type AppointmentStatus string

// Status values mirror the CHECK constraint on the legacy Citas table.
const (
	AppointmentStatusScheduled AppointmentStatus = "Agendada"
	AppointmentStatusPending   AppointmentStatus = "Pendiente"
	AppointmentStatusCompleted AppointmentStatus = "Completada"
	AppointmentStatusCancelled AppointmentStatus = "Cancelada"
)

var allowedStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusPending,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

// IsKnownStatus reports whether the input matches one of the allowed status
// values, ignoring case and surrounding whitespace.
func IsKnownStatus(status string) bool {
	v := strings.TrimSpace(status)
	for _, s := range allowedStatuses {
		if strings.EqualFold(string(s), v) {
			return true
		}
	}
	return false
}

// NormalizeStatus trims the input and falls back to the default status when
// it is empty or not in the allowed set. The store rejects anything else, so
// unknown values are coerced rather than surfaced as errors; this preserves
// the behavior of the legacy API.
func NormalizeStatus(status string) AppointmentStatus {
	v := strings.TrimSpace(status)
	if v == "" {
		return AppointmentStatusScheduled
	}
	for _, s := range allowedStatuses {
		if strings.EqualFold(string(s), v) {
			return s
		}
	}
	return AppointmentStatusScheduled
}

type Appointment struct {
	ID          int               `json:"id"`
	ClientID    int               `json:"client_id"`
	StaffID     int               `json:"staff_id"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     *time.Time        `json:"end_time,omitempty"`
	Status      AppointmentStatus `json:"status"`
	Description string            `json:"description,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// AppointmentHeader carries the header fields of a create or full-replace
// update; service line IDs travel separately so the aggregate writer can
// drive the detail procedure per line.
type AppointmentHeader struct {
	ClientID    int        `json:"client_id" binding:"required,gt=0"`
	StaffID     int        `json:"staff_id" binding:"required,gt=0"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Status      string     `json:"status,omitempty"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type CreateAppointmentRequest struct {
	AppointmentHeader
	ServiceIDs []int `json:"service_ids"`
}

type AppointmentFilters struct {
	AppointmentID *int
	ClientID      *int
	StaffID       *int
	Status        *string
	From          *time.Time
	To            *time.Time
}

// AppointmentLine is one service attached to an appointment; at most one
// line exists per (appointment, service) pair.
type AppointmentLine struct {
	AppointmentID int      `json:"appointment_id"`
	ServiceID     int      `json:"service_id"`
	Quantity      *int     `json:"quantity,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
}

// AppointmentLineDetail is the detailed listing view: joined with the
// service catalog, quantity defaulted to 1 and the line total computed by
// the stored procedure.
type AppointmentLineDetail struct {
	AppointmentID int      `json:"appointment_id"`
	ServiceID     int      `json:"service_id"`
	ServiceName   string   `json:"service_name"`
	Quantity      int      `json:"quantity"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	LineTotal     float64  `json:"line_total"`
}

type AddLineRequest struct {
	ServiceID int      `json:"service_id" binding:"required,gt=0"`
	Quantity  *int     `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// Line-insert result codes returned by the detail procedure.
const (
	LineInserted        = 1
	LineQuantityUpdated = 2
)
