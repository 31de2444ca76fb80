package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

func TestReplaceAllDedupesAndSkipsInvalidIDs(t *testing.T) {
	store := newFakeStore()
	store.lines[10] = []fakeLine{{serviceID: 1, quantity: 1}, {serviceID: 2, quantity: 1}}
	repo := NewAppointmentLineRepository(store)

	total, err := repo.ReplaceAll(context.Background(), 10, []int{5, 5, 0, -1, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "one result code per surviving insert")

	ids := lineServiceIDs(t, store, 10)
	assert.Equal(t, []int{5, 6}, ids)
}

func TestReplaceAllLeavesPartialStateOnFailure(t *testing.T) {
	// The replace path runs outside any transaction: the deletes that
	// already happened and the first insert stay in place when a later
	// insert fails.
	store := newFakeStore()
	store.lines[10] = []fakeLine{{serviceID: 1, quantity: 1}}
	inserts := 0
	store.failOn = func(proc string, op sproc.OpCode) error {
		if proc == procAppointmentLines && op == sproc.OpInsert {
			inserts++
			if inserts == 2 {
				return errors.New("server gone away")
			}
		}
		return nil
	}
	repo := NewAppointmentLineRepository(store)

	_, err := repo.ReplaceAll(context.Background(), 10, []int{5, 6})
	require.Error(t, err)
	assert.Equal(t, []int{5}, lineServiceIDs(t, store, 10))
	assert.Zero(t, store.rollback)
}

func TestInsertReportsUpsertResultCodes(t *testing.T) {
	store := newFakeStore()
	store.upsert = true
	repo := NewAppointmentLineRepository(store)

	code, err := repo.Insert(context.Background(), 10, 5, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	code, err = repo.Insert(context.Background(), 10, 5, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, code, "second insert updates the existing line's quantity")
	assert.Len(t, store.lines[10], 1)
	assert.Equal(t, 2, store.lines[10][0].quantity)
}

func TestListDetailedDefaultsQuantityAndTotal(t *testing.T) {
	store := newFakeStore()
	store.catalog[5] = fakeService{name: "Corte", price: 12.50}
	store.lines[10] = []fakeLine{{serviceID: 5, quantity: 2}}
	repo := NewAppointmentLineRepository(store)

	lines, err := repo.ListDetailed(context.Background(), 10, nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Corte", lines[0].ServiceName)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 25.0, lines[0].LineTotal)
}

func TestTotalForAppointment(t *testing.T) {
	store := newFakeStore()
	store.catalog[5] = fakeService{name: "Corte", price: 10}
	store.catalog[6] = fakeService{name: "Tinte", price: 30}
	store.lines[10] = []fakeLine{{serviceID: 5, quantity: 1}, {serviceID: 6, quantity: 1}}
	repo := NewAppointmentLineRepository(store)

	total, err := repo.Total(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 40.0, total)
}

func TestTotalEmptyAppointmentIsZero(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentLineRepository(store)

	total, err := repo.Total(context.Background(), 99)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteLineReportsAffected(t *testing.T) {
	store := newFakeStore()
	store.lines[10] = []fakeLine{{serviceID: 5, quantity: 1}}
	repo := NewAppointmentLineRepository(store)

	affected, err := repo.Delete(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	affected, err = repo.Delete(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
