package mysql

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

type appointmentLineRepository struct {
	store sproc.Store
}

func NewAppointmentLineRepository(store sproc.Store) repository.AppointmentLineRepository {
	return &appointmentLineRepository{store: store}
}

func (r *appointmentLineRepository) List(ctx context.Context, appointmentID, serviceID *int) ([]*model.AppointmentLine, error) {
	res, err := r.store.Call(ctx, procAppointmentLines, sproc.OpList,
		appointmentID, serviceID, nil, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment lines: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil, nil
	}
	lines := make([]*model.AppointmentLine, 0, len(t.Rows))
	for _, row := range t.Rows {
		lines = append(lines, &model.AppointmentLine{
			AppointmentID: row.Int("CitaID", 0),
			ServiceID:     row.Int("ServicioID", 0),
			Quantity:      row.OptionalInt("Cantidad"),
			UnitPrice:     row.OptionalFloat("PrecioUnitario"),
		})
	}
	return lines, nil
}

// ListDetailed joins each line with the service catalog; quantity defaults
// to 1 and the line total to 0 when the procedure omits them.
func (r *appointmentLineRepository) ListDetailed(ctx context.Context, appointmentID int, serviceID *int) ([]*model.AppointmentLineDetail, error) {
	res, err := r.store.Call(ctx, procAppointmentLines, sproc.OpListDetailed,
		appointmentID, serviceID, nil, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment lines: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil, nil
	}
	lines := make([]*model.AppointmentLineDetail, 0, len(t.Rows))
	for _, row := range t.Rows {
		lines = append(lines, &model.AppointmentLineDetail{
			AppointmentID: row.Int("CitaID", 0),
			ServiceID:     row.Int("ServicioID", 0),
			ServiceName:   row.String("Nombre"),
			Quantity:      row.Int("Cantidad", 1),
			UnitPrice:     row.OptionalFloat("PrecioUnitario"),
			LineTotal:     row.Float("TotalLinea", 0),
		})
	}
	return lines, nil
}

// Total returns the aggregate total for one appointment, 0 when the
// appointment has no lines or the column comes back NULL.
func (r *appointmentLineRepository) Total(ctx context.Context, appointmentID int) (float64, error) {
	res, err := r.store.Call(ctx, procAppointmentLines, sproc.OpTotal,
		appointmentID, nil, nil, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to get appointment total: %w", err)
	}

	t := res.First()
	if t == nil || len(t.Rows) == 0 {
		return 0, nil
	}
	return t.Rows[0].Float("TotalCita", 0), nil
}

// Insert adds one line. The procedure upserts on the (appointment, service)
// key and reports what it did: 1 inserted, 2 updated the existing line's
// quantity.
func (r *appointmentLineRepository) Insert(ctx context.Context, appointmentID, serviceID int, quantity *int, unitPrice *float64) (int, error) {
	res, err := r.store.Call(ctx, procAppointmentLines, sproc.OpInsert,
		appointmentID, serviceID, quantity, unitPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert appointment line: %w", err)
	}

	if v := res.ScalarInt("Resultado"); v != 0 {
		return v, nil
	}
	// Older procedure versions reported the result under "Insertado".
	return res.ScalarInt("Insertado"), nil
}

func (r *appointmentLineRepository) Delete(ctx context.Context, appointmentID, serviceID int) (int, error) {
	res, err := r.store.Call(ctx, procAppointmentLines, sproc.OpDelete,
		appointmentID, serviceID, nil, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete appointment line: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

// ReplaceAll deletes every current line and inserts the requested set,
// deduplicated in first-seen order with non-positive IDs skipped. Each call
// is its own auto-commit round trip: a failure partway through leaves the
// lines in whatever state the completed calls produced. Known limitation
// carried over from the legacy API; the aggregate writer's Update is the
// transactional way to replace lines together with the header.
func (r *appointmentLineRepository) ReplaceAll(ctx context.Context, appointmentID int, serviceIDs []int) (int, error) {
	current, err := r.List(ctx, &appointmentID, nil)
	if err != nil {
		return 0, err
	}
	for _, line := range current {
		if _, err := r.Delete(ctx, appointmentID, line.ServiceID); err != nil {
			return 0, err
		}
	}

	seen := make(map[int]struct{}, len(serviceIDs))
	total := 0
	for _, sid := range serviceIDs {
		if sid <= 0 {
			continue
		}
		if _, dup := seen[sid]; dup {
			continue
		}
		seen[sid] = struct{}{}

		code, err := r.Insert(ctx, appointmentID, sid, nil, nil)
		if err != nil {
			return 0, err
		}
		total += code
	}
	return total, nil
}
