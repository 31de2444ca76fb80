package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

func testHeader() *model.AppointmentHeader {
	return &model.AppointmentHeader{
		ClientID:  1,
		StaffID:   2,
		StartTime: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func lineServiceIDs(t *testing.T, store *fakeStore, appointmentID int) []int {
	t.Helper()
	ids := make([]int, 0, len(store.lines[appointmentID]))
	for _, line := range store.lines[appointmentID] {
		ids = append(ids, line.serviceID)
	}
	return ids
}

func TestCreateInsertsHeaderAndLines(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	id, err := repo.Create(context.Background(), testHeader(), []int{3, 7})
	require.NoError(t, err)
	assert.Greater(t, id, 0)
	assert.Equal(t, 1, store.commits)
	assert.Equal(t, []int{3, 7}, lineServiceIDs(t, store, id))
}

func TestCreateDoesNotDeduplicateServiceIDs(t *testing.T) {
	// The writer forwards the requested list verbatim; collapsing
	// duplicates is the detail procedure's decision, and this store keeps
	// every insert.
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	id, err := repo.Create(context.Background(), testHeader(), []int{3, 7, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, 3}, lineServiceIDs(t, store, id))
}

func TestCreateRollsBackWhenLineInsertFails(t *testing.T) {
	store := newFakeStore()
	inserts := 0
	store.failOn = func(proc string, op sproc.OpCode) error {
		if proc == procAppointmentLines && op == sproc.OpInsert {
			inserts++
			if inserts == 2 {
				return errors.New("duplicate key")
			}
		}
		return nil
	}
	repo := NewAppointmentRepository(store)

	_, err := repo.Create(context.Background(), testHeader(), []int{3, 7, 9})
	require.Error(t, err)
	assert.Empty(t, store.headers, "header must not survive a failed line insert")
	assert.Empty(t, store.lines[101])
	assert.Equal(t, 1, store.rollback)
	assert.Zero(t, store.commits)
}

func TestCreateFailsWithoutIdentity(t *testing.T) {
	store := newFakeStore()
	store.noInsertIdentity = true
	repo := NewAppointmentRepository(store)

	_, err := repo.Create(context.Background(), testHeader(), nil)
	require.ErrorIs(t, err, repository.ErrNoIdentity)
	assert.Equal(t, 1, store.rollback)
}

func TestCreateNormalizesStatus(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	header := testHeader()
	header.Status = "bogus"
	id, err := repo.Create(context.Background(), header, nil)
	require.NoError(t, err)
	assert.Equal(t, string(model.AppointmentStatusScheduled), store.headers[id].status)
}

func TestUpdateReplacesLineSet(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	id, err := repo.Create(context.Background(), testHeader(), []int{1, 2})
	require.NoError(t, err)

	affected, err := repo.Update(context.Background(), id, testHeader(), []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, affected)
	assert.Equal(t, []int{2, 3}, lineServiceIDs(t, store, id))
}

func TestUpdateNotFound(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	_, err := repo.Update(context.Background(), 999, testHeader(), []int{1})
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, store.lines[999], "no line writes may follow a missed header update")
	assert.Equal(t, 1, store.rollback)
}

func TestUpdateRollsBackOnLineFailure(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	id, err := repo.Create(context.Background(), testHeader(), []int{1, 2})
	require.NoError(t, err)

	inserts := 0
	store.failOn = func(proc string, op sproc.OpCode) error {
		if proc == procAppointmentLines && op == sproc.OpInsert {
			inserts++
			if inserts == 2 {
				return errors.New("connection reset")
			}
		}
		return nil
	}

	_, err = repo.Update(context.Background(), id, testHeader(), []int{5, 6})
	require.Error(t, err)
	assert.Equal(t, []int{1, 2}, lineServiceIDs(t, store, id), "original lines must survive the rollback")
}

func TestDeleteRemovesLinesAndHeader(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	id, err := repo.Create(context.Background(), testHeader(), []int{1, 2})
	require.NoError(t, err)

	affected, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)
	assert.Empty(t, store.headers)
	assert.Empty(t, store.lines[id])
}

func TestDeleteMissingAppointmentReportsZero(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	affected, err := repo.Delete(context.Background(), 404)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestGetReturnsNilForMissing(t *testing.T) {
	store := newFakeStore()
	repo := NewAppointmentRepository(store)

	appt, err := repo.Get(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, appt)
}
