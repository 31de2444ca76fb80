package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
	"github.com/beautycare/scheduling-api/pkg/messaging"
)

type fakeAppointmentRepo struct {
	appointments map[int]*model.Appointment
	created      []*model.AppointmentHeader
	updateErr    error
	deleteCount  int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[int]*model.Appointment)}
}

func (r *fakeAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id int) (*model.Appointment, error) {
	return r.appointments[id], nil
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, header *model.AppointmentHeader, serviceIDs []int) (int, error) {
	r.created = append(r.created, header)
	id := 100 + len(r.created)
	r.appointments[id] = &model.Appointment{ID: id, ClientID: header.ClientID, StaffID: header.StaffID}
	return id, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, id int, header *model.AppointmentHeader, serviceIDs []int) (int, error) {
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	if _, ok := r.appointments[id]; !ok {
		return 0, repository.ErrNotFound
	}
	return 1, nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id int) (int, error) {
	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	r.deleteCount++
	return 1, nil
}

type fakeLineRepo struct {
	total          float64
	deleteAffected int
}

func (r *fakeLineRepo) List(ctx context.Context, appointmentID, serviceID *int) ([]*model.AppointmentLine, error) {
	return nil, nil
}

func (r *fakeLineRepo) ListDetailed(ctx context.Context, appointmentID int, serviceID *int) ([]*model.AppointmentLineDetail, error) {
	return nil, nil
}

func (r *fakeLineRepo) Total(ctx context.Context, appointmentID int) (float64, error) {
	return r.total, nil
}

func (r *fakeLineRepo) Insert(ctx context.Context, appointmentID, serviceID int, quantity *int, unitPrice *float64) (int, error) {
	return model.LineInserted, nil
}

func (r *fakeLineRepo) Delete(ctx context.Context, appointmentID, serviceID int) (int, error) {
	return r.deleteAffected, nil
}

func (r *fakeLineRepo) ReplaceAll(ctx context.Context, appointmentID int, serviceIDs []int) (int, error) {
	return len(serviceIDs), nil
}

type fakeBroker struct {
	published []messaging.Message
	err       error
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, message.(messaging.Message))
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }

func validRequest() *model.CreateAppointmentRequest {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return &model.CreateAppointmentRequest{
		AppointmentHeader: model.AppointmentHeader{
			ClientID:  1,
			StaffID:   2,
			StartTime: start,
			EndTime:   &end,
		},
		ServiceIDs: []int{3, 4},
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	repo := newFakeAppointmentRepo()
	broker := &fakeBroker{}
	svc := NewService(repo, &fakeLineRepo{}, broker, nil, nil)

	id, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	require.Len(t, broker.published, 1)
	assert.Equal(t, EventCreated, broker.published[0].Type)
}

func TestCreateRejectsInvertedTimes(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeLineRepo{}, nil, nil, nil)

	req := validRequest()
	end := req.StartTime.Add(-time.Hour)
	req.EndTime = &end

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestCreateSucceedsWhenBrokerFails(t *testing.T) {
	repo := newFakeAppointmentRepo()
	broker := &fakeBroker{err: assert.AnError}
	svc := NewService(repo, &fakeLineRepo{}, broker, nil, nil)

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestUpdateMapsNotFound(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeLineRepo{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), 9999, validRequest())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestDeleteMissingReturnsNotFoundWithoutEvent(t *testing.T) {
	repo := newFakeAppointmentRepo()
	broker := &fakeBroker{}
	svc := NewService(repo, &fakeLineRepo{}, broker, nil, nil)

	_, err := svc.Delete(context.Background(), 42)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Empty(t, broker.published)
}

func TestCreateAllowsZeroDurationAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeLineRepo{}, nil, nil, nil)

	req := validRequest()
	end := req.StartTime
	req.EndTime = &end

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
}

func TestRemoveLineReportsAffected(t *testing.T) {
	svc := NewService(newFakeAppointmentRepo(), &fakeLineRepo{deleteAffected: 1}, nil, nil, nil)

	affected, err := svc.RemoveLine(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)
}

func TestRemoveLineMissingReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeAppointmentRepo(), &fakeLineRepo{}, nil, nil, nil)

	_, err := svc.RemoveLine(context.Background(), 1, 2)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeAppointmentRepo(), &fakeLineRepo{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), 1)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
