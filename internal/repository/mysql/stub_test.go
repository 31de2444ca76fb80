package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

// fakeStore implements sproc.Store in memory with the semantics of the
// legacy procedures, so the aggregate writer and the replacement engine can
// be exercised without a database. WithTx snapshots the state and restores
// it when the callback fails, mirroring a real rollback.
type fakeStore struct {
	nextID   int
	headers  map[int]fakeHeader
	lines    map[int][]fakeLine
	catalog  map[int]fakeService
	upsert   bool // true: line insert on an existing (appt, service) bumps quantity
	noInsertIdentity bool
	failOn   func(proc string, op sproc.OpCode) error
	calls    []string
	inTx     bool
	commits  int
	rollback int
}

type fakeHeader struct {
	clientID    int
	staffID     int
	start       time.Time
	end         *time.Time
	status      string
	description string
	notes       string
}

type fakeLine struct {
	serviceID int
	quantity  int
	unitPrice *float64
}

type fakeService struct {
	name  string
	price float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:  100,
		headers: map[int]fakeHeader{},
		lines:   map[int][]fakeLine{},
		catalog: map[int]fakeService{},
	}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(sproc.Session) error) error {
	headers := make(map[int]fakeHeader, len(s.headers))
	for k, v := range s.headers {
		headers[k] = v
	}
	lines := make(map[int][]fakeLine, len(s.lines))
	for k, v := range s.lines {
		lines[k] = append([]fakeLine(nil), v...)
	}
	savedID := s.nextID

	s.inTx = true
	err := fn(s)
	s.inTx = false

	if err != nil {
		s.headers = headers
		s.lines = lines
		s.nextID = savedID
		s.rollback++
		return err
	}
	s.commits++
	return nil
}

func (s *fakeStore) CallDirect(ctx context.Context, proc string, args ...any) (*sproc.Result, error) {
	return nil, fmt.Errorf("unexpected direct call to %s", proc)
}

func (s *fakeStore) Call(ctx context.Context, proc string, op sproc.OpCode, args ...any) (*sproc.Result, error) {
	s.calls = append(s.calls, fmt.Sprintf("%s/%d", proc, op))
	if s.failOn != nil {
		if err := s.failOn(proc, op); err != nil {
			return nil, err
		}
	}

	switch proc {
	case procAppointments:
		return s.callAppointments(op, args)
	case procAppointmentLines:
		return s.callLines(op, args)
	}
	return nil, fmt.Errorf("unknown procedure %s", proc)
}

func (s *fakeStore) callAppointments(op sproc.OpCode, args []any) (*sproc.Result, error) {
	switch op {
	case sproc.OpInsert:
		if s.noInsertIdentity {
			return &sproc.Result{}, nil
		}
		s.nextID++
		id := s.nextID
		s.headers[id] = headerFromArgs(args[1:])
		return singleRow("CitaID", id), nil

	case sproc.OpUpdate:
		id, _ := argInt(args[0])
		if _, ok := s.headers[id]; !ok {
			return singleRow("Afectados", 0), nil
		}
		s.headers[id] = headerFromArgs(args[1:])
		return singleRow("Afectados", 1), nil

	case sproc.OpDelete:
		id, _ := argInt(args[0])
		if _, ok := s.headers[id]; !ok {
			return singleRow("Afectados", 0), nil
		}
		delete(s.headers, id)
		return singleRow("Afectados", 1), nil

	case sproc.OpList:
		table := sproc.Table{Columns: []string{
			"CitaID", "ClienteID", "PersonalID", "FechaHoraInicio",
			"FechaHoraFin", "Estado", "Descripcion", "Notas",
		}}
		filterID, hasFilter := argInt(args[0])
		for id, h := range s.headers {
			if hasFilter && id != filterID {
				continue
			}
			table.Rows = append(table.Rows, sproc.Row{
				"CitaID": id, "ClienteID": h.clientID, "PersonalID": h.staffID,
				"FechaHoraInicio": h.start, "FechaHoraFin": optTime(h.end),
				"Estado": h.status, "Descripcion": h.description, "Notas": h.notes,
			})
		}
		return &sproc.Result{Tables: []sproc.Table{table}}, nil
	}
	return nil, fmt.Errorf("unsupported appointment op %d", op)
}

func (s *fakeStore) callLines(op sproc.OpCode, args []any) (*sproc.Result, error) {
	apptID, _ := argInt(args[0])

	switch op {
	case sproc.OpInsert:
		svcID, _ := argInt(args[1])
		qty := 1
		if q, ok := argInt(args[2]); ok {
			qty = q
		}
		var price *float64
		if p, ok := args[3].(*float64); ok && p != nil {
			price = p
		}
		if s.upsert {
			for i, line := range s.lines[apptID] {
				if line.serviceID == svcID {
					s.lines[apptID][i].quantity += qty
					return singleRow("Resultado", 2), nil
				}
			}
		}
		s.lines[apptID] = append(s.lines[apptID], fakeLine{serviceID: svcID, quantity: qty, unitPrice: price})
		return singleRow("Resultado", 1), nil

	case sproc.OpDelete:
		svcID, _ := argInt(args[1])
		affected := 0
		kept := s.lines[apptID][:0]
		for _, line := range s.lines[apptID] {
			if line.serviceID == svcID {
				affected++
				continue
			}
			kept = append(kept, line)
		}
		s.lines[apptID] = kept
		return singleRow("Afectados", affected), nil

	case sproc.OpList:
		table := sproc.Table{Columns: []string{"CitaID", "ServicioID", "Cantidad", "PrecioUnitario"}}
		for _, line := range s.lines[apptID] {
			table.Rows = append(table.Rows, sproc.Row{
				"CitaID": apptID, "ServicioID": line.serviceID,
				"Cantidad": line.quantity, "PrecioUnitario": optFloat(line.unitPrice),
			})
		}
		return &sproc.Result{Tables: []sproc.Table{table}}, nil

	case sproc.OpListDetailed:
		table := sproc.Table{Columns: []string{
			"CitaID", "ServicioID", "Nombre", "Cantidad", "PrecioUnitario", "TotalLinea",
		}}
		for _, line := range s.lines[apptID] {
			svc := s.catalog[line.serviceID]
			table.Rows = append(table.Rows, sproc.Row{
				"CitaID": apptID, "ServicioID": line.serviceID, "Nombre": svc.name,
				"Cantidad": line.quantity, "PrecioUnitario": optFloat(line.unitPrice),
				"TotalLinea": float64(line.quantity) * s.effectivePrice(line),
			})
		}
		return &sproc.Result{Tables: []sproc.Table{table}}, nil

	case sproc.OpTotal:
		total := 0.0
		for _, line := range s.lines[apptID] {
			total += float64(line.quantity) * s.effectivePrice(line)
		}
		return &sproc.Result{Tables: []sproc.Table{{
			Columns: []string{"TotalCita"},
			Rows:    []sproc.Row{{"TotalCita": total}},
		}}}, nil
	}
	return nil, fmt.Errorf("unsupported line op %d", op)
}

func (s *fakeStore) effectivePrice(line fakeLine) float64 {
	if line.unitPrice != nil {
		return *line.unitPrice
	}
	return s.catalog[line.serviceID].price
}

func headerFromArgs(args []any) fakeHeader {
	clientID, _ := argInt(args[0])
	staffID, _ := argInt(args[1])
	h := fakeHeader{clientID: clientID, staffID: staffID}
	if t, ok := args[2].(time.Time); ok {
		h.start = t
	}
	if t, ok := args[3].(*time.Time); ok && t != nil {
		h.end = t
	}
	if v, ok := args[4].(string); ok {
		h.status = v
	}
	if v, ok := args[5].(*string); ok && v != nil {
		h.description = *v
	}
	if v, ok := args[6].(*string); ok && v != nil {
		h.notes = *v
	}
	return h
}

func argInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case *int:
		if n != nil {
			return *n, true
		}
	}
	return 0, false
}

func optTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func optFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func singleRow(col string, v int) *sproc.Result {
	return &sproc.Result{Tables: []sproc.Table{{
		Columns: []string{col},
		Rows:    []sproc.Row{{col: v}},
	}}}
}
