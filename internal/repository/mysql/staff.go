package mysql

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

type staffRepository struct {
	store sproc.Store
}

func NewStaffRepository(store sproc.Store) repository.StaffRepository {
	return &staffRepository{store: store}
}

func (r *staffRepository) List(ctx context.Context, filters *model.StaffFilters) ([]*model.Staff, error) {
	if filters == nil {
		filters = &model.StaffFilters{}
	}
	res, err := r.store.Call(ctx, procStaff, sproc.OpList,
		filters.StaffID, nil, nil, filters.Role, nil, nil, nil, filters.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil, nil
	}
	staff := make([]*model.Staff, 0, len(t.Rows))
	for _, row := range t.Rows {
		staff = append(staff, mapStaff(row))
	}
	return staff, nil
}

func (r *staffRepository) Get(ctx context.Context, id int) (*model.Staff, error) {
	staff, err := r.List(ctx, &model.StaffFilters{StaffID: &id})
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, nil
	}
	return staff[0], nil
}

func (r *staffRepository) Create(ctx context.Context, req *model.CreateStaffRequest) (int, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	res, err := r.store.Call(ctx, procStaff, sproc.OpInsert,
		nil, req.FirstName, nullable(req.LastName), req.Role,
		nullable(req.Phone), nullable(req.Email), req.HiredAt, active,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create staff member: %w", err)
	}
	return res.Identity("PersonalID"), nil
}

func (r *staffRepository) Update(ctx context.Context, id int, req *model.CreateStaffRequest) (int, error) {
	res, err := r.store.Call(ctx, procStaff, sproc.OpUpdate,
		id, req.FirstName, nullable(req.LastName), req.Role,
		nullable(req.Phone), nullable(req.Email), req.HiredAt, req.Active,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update staff member: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

func (r *staffRepository) Delete(ctx context.Context, id int) (int, error) {
	res, err := r.store.Call(ctx, procStaff, sproc.OpDelete,
		id, nil, nil, nil, nil, nil, nil, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete staff member: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

func mapStaff(row sproc.Row) *model.Staff {
	return &model.Staff{
		ID:        row.Int("PersonalID", 0),
		FirstName: row.String("Nombre"),
		LastName:  row.String("Apellido"),
		Role:      row.String("Rol"),
		Phone:     row.String("Telefono"),
		Email:     row.String("CorreoElectronico"),
		HiredAt:   row.OptionalTime("FechaIngreso"),
		Active:    row.Bool("Activo"),
	}
}
