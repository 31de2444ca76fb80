package mysql

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

// appointmentRepository owns the appointment aggregate: the header row plus
// its service lines, kept consistent inside one transaction per write.
type appointmentRepository struct {
	store sproc.Store
}

func NewAppointmentRepository(store sproc.Store) repository.AppointmentRepository {
	return &appointmentRepository{store: store}
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	if filters == nil {
		filters = &model.AppointmentFilters{}
	}
	res, err := r.store.Call(ctx, procAppointments, sproc.OpList,
		filters.AppointmentID, filters.ClientID, filters.StaffID,
		nil, nil, filters.Status, nil, nil,
		filters.From, filters.To,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil, nil
	}
	appointments := make([]*model.Appointment, 0, len(t.Rows))
	for _, row := range t.Rows {
		appointments = append(appointments, mapAppointment(row))
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int) (*model.Appointment, error) {
	appointments, err := r.List(ctx, &model.AppointmentFilters{AppointmentID: &id})
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, nil
	}
	return appointments[0], nil
}

// Create inserts the header and one line per requested service ID inside a
// single transaction. Duplicate service IDs are passed through as-is; the
// detail procedure upserts on the (appointment, service) key and decides the
// final row count itself.
func (r *appointmentRepository) Create(ctx context.Context, header *model.AppointmentHeader, serviceIDs []int) (int, error) {
	var appointmentID int

	err := r.store.WithTx(ctx, func(tx sproc.Session) error {
		status := model.NormalizeStatus(header.Status)

		res, err := tx.Call(ctx, procAppointments, sproc.OpInsert,
			nil, header.ClientID, header.StaffID,
			header.StartTime, header.EndTime, string(status),
			nullable(header.Description), nullable(header.Notes),
			nil, nil,
		)
		if err != nil {
			return fmt.Errorf("failed to insert appointment header: %w", err)
		}

		appointmentID = res.Identity("CitaID")
		if appointmentID <= 0 {
			return repository.ErrNoIdentity
		}

		for _, sid := range serviceIDs {
			if _, err := tx.Call(ctx, procAppointmentLines, sproc.OpInsert,
				appointmentID, sid, nil, nil,
			); err != nil {
				return fmt.Errorf("failed to insert line for service %d: %w", sid, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return appointmentID, nil
}

// Update replaces every header field and the entire line set. Lines are not
// diffed: the current set is read, deleted one by one, and the requested set
// reinserted, all inside the same transaction. More round trips than a diff,
// but the final state always equals the request.
func (r *appointmentRepository) Update(ctx context.Context, id int, header *model.AppointmentHeader, serviceIDs []int) (int, error) {
	var affected int

	err := r.store.WithTx(ctx, func(tx sproc.Session) error {
		status := model.NormalizeStatus(header.Status)

		res, err := tx.Call(ctx, procAppointments, sproc.OpUpdate,
			id, header.ClientID, header.StaffID,
			header.StartTime, header.EndTime, string(status),
			nullable(header.Description), nullable(header.Notes),
			nil, nil,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment header: %w", err)
		}

		affected = res.ScalarInt("Afectados")
		if affected == 0 {
			return fmt.Errorf("appointment header: %w", repository.ErrNotFound)
		}

		if err := deleteAllLines(ctx, tx, id); err != nil {
			return err
		}

		for _, sid := range serviceIDs {
			if _, err := tx.Call(ctx, procAppointmentLines, sproc.OpInsert,
				id, sid, nil, nil,
			); err != nil {
				return fmt.Errorf("failed to insert line for service %d: %w", sid, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Delete removes the lines and then the header in one transaction. The
// returned count is the header procedure's affected-row count; 0 means the
// appointment did not exist.
func (r *appointmentRepository) Delete(ctx context.Context, id int) (int, error) {
	var affected int

	err := r.store.WithTx(ctx, func(tx sproc.Session) error {
		if err := deleteAllLines(ctx, tx, id); err != nil {
			return err
		}

		res, err := tx.Call(ctx, procAppointments, sproc.OpDelete,
			id, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		)
		if err != nil {
			return fmt.Errorf("failed to delete appointment header: %w", err)
		}
		affected = res.ScalarInt("Afectados")
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// deleteAllLines reads the current line set through tx and deletes each line
// with its own call, staying inside the caller's transaction.
func deleteAllLines(ctx context.Context, tx sproc.Session, appointmentID int) error {
	res, err := tx.Call(ctx, procAppointmentLines, sproc.OpList,
		appointmentID, nil, nil, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to list appointment lines: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil
	}
	for _, row := range t.Rows {
		sid := row.Int("ServicioID", 0)
		if _, err := tx.Call(ctx, procAppointmentLines, sproc.OpDelete,
			appointmentID, sid, nil, nil,
		); err != nil {
			return fmt.Errorf("failed to delete line for service %d: %w", sid, err)
		}
	}
	return nil
}

func mapAppointment(row sproc.Row) *model.Appointment {
	return &model.Appointment{
		ID:          row.Int("CitaID", 0),
		ClientID:    row.Int("ClienteID", 0),
		StaffID:     row.Int("PersonalID", 0),
		StartTime:   row.Time("FechaHoraInicio"),
		EndTime:     row.OptionalTime("FechaHoraFin"),
		Status:      model.AppointmentStatus(row.String("Estado")),
		Description: row.String("Descripcion"),
		Notes:       row.String("Notas"),
	}
}
