package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want AppointmentStatus
	}{
		{"", AppointmentStatusScheduled},
		{"   ", AppointmentStatusScheduled},
		{"bogus", AppointmentStatusScheduled},
		{"Agendada", AppointmentStatusScheduled},
		{"pendiente", AppointmentStatusPending},
		{" COMPLETADA ", AppointmentStatusCompleted},
		{"Cancelada", AppointmentStatusCancelled},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.in), "input %q", tt.in)
	}
}
