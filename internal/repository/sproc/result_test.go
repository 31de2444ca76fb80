package sproc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tableResult(cols []string, rows ...Row) *Result {
	return &Result{Tables: []Table{{Columns: cols, Rows: rows}}}
}

func TestScalarIntFirstColumnWins(t *testing.T) {
	res := tableResult([]string{"Afectados", "Otro"}, Row{"Afectados": int64(3), "Otro": 9})
	assert.Equal(t, 3, res.ScalarInt("Otro"))
}

func TestScalarIntFallsBackToNamedColumn(t *testing.T) {
	res := tableResult([]string{"Foo", "Afectados"}, Row{"Foo": "x", "Afectados": 5})
	assert.Equal(t, 5, res.ScalarInt("Afectados"))
}

func TestScalarIntScansAnyColumn(t *testing.T) {
	res := tableResult([]string{"A", "B", "C"}, Row{"A": "x", "B": nil, "C": []byte("7")})
	assert.Equal(t, 7, res.ScalarInt("Missing"))
}

func TestScalarIntEmptyResult(t *testing.T) {
	assert.Zero(t, (&Result{}).ScalarInt("Afectados"))
	assert.Zero(t, tableResult([]string{"A"}).ScalarInt("Afectados"))
	var nilResult *Result
	assert.Zero(t, nilResult.ScalarInt("Afectados"))
}

func TestScalarIntMalformedDegradesToZero(t *testing.T) {
	res := tableResult([]string{"A"}, Row{"A": "not a number"})
	assert.Zero(t, res.ScalarInt("A"))
}

func TestIdentityPrefersCandidateOrder(t *testing.T) {
	res := tableResult([]string{"UsuarioID", "CitaID"}, Row{"UsuarioID": 8, "CitaID": 42})
	assert.Equal(t, 42, res.Identity("CitaID", "UsuarioID"))
}

func TestIdentityFallsBackToScalar(t *testing.T) {
	res := tableResult([]string{"Afectados"}, Row{"Afectados": 1})
	assert.Equal(t, 1, res.Identity("CitaID"))
	assert.Zero(t, (&Result{}).Identity("CitaID"))
}

func TestIdentitySkipsUnparseableCandidate(t *testing.T) {
	res := tableResult([]string{"CitaID", "ID"}, Row{"CitaID": "abc", "ID": "15"})
	assert.Equal(t, 15, res.Identity("CitaID", "ID"))
}

func TestRowGettersDefaultOnMissingColumns(t *testing.T) {
	row := Row{}
	assert.Equal(t, 1, row.Int("Cantidad", 1))
	assert.Nil(t, row.OptionalInt("Cantidad"))
	assert.Zero(t, row.Float("TotalLinea", 0))
	assert.Nil(t, row.OptionalFloat("PrecioUnitario"))
	assert.Empty(t, row.String("Nombre"))
	assert.False(t, row.Bool("Activo"))
	assert.True(t, row.Time("FechaHoraInicio").IsZero())
	assert.Nil(t, row.OptionalTime("FechaHoraFin"))
}

func TestRowGettersCoerceDriverTypes(t *testing.T) {
	when := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	row := Row{
		"Cantidad":        []byte("2"),
		"PrecioUnitario":  []byte("12.50"),
		"Nombre":          []byte("Corte"),
		"Activo":          int64(1),
		"FechaHoraInicio": when,
		"FechaHoraFin":    []byte("2026-03-14 11:00:00"),
	}
	assert.Equal(t, 2, row.Int("Cantidad", 0))
	assert.Equal(t, 12.50, row.Float("PrecioUnitario", 0))
	assert.Equal(t, "Corte", row.String("Nombre"))
	assert.True(t, row.Bool("Activo"))
	assert.Equal(t, when, row.Time("FechaHoraInicio"))
	if assert.NotNil(t, row.OptionalTime("FechaHoraFin")) {
		assert.Equal(t, 11, row.OptionalTime("FechaHoraFin").Hour())
	}
}
