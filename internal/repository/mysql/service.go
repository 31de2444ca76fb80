package mysql

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

type serviceRepository struct {
	store sproc.Store
}

func NewServiceRepository(store sproc.Store) repository.ServiceRepository {
	return &serviceRepository{store: store}
}

func (r *serviceRepository) List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error) {
	if filters == nil {
		filters = &model.ServiceFilters{}
	}
	res, err := r.store.Call(ctx, procServices, sproc.OpList,
		filters.ServiceID, filters.Name, nil, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil, nil
	}
	services := make([]*model.Service, 0, len(t.Rows))
	for _, row := range t.Rows {
		services = append(services, &model.Service{
			ID:          row.Int("ServicioID", 0),
			Name:        row.String("Nombre"),
			Price:       row.Float("Precio", 0),
			DurationMin: row.Int("DuracionMin", 0),
		})
	}
	return services, nil
}

func (r *serviceRepository) Get(ctx context.Context, id int) (*model.Service, error) {
	services, err := r.List(ctx, &model.ServiceFilters{ServiceID: &id})
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, nil
	}
	return services[0], nil
}

func (r *serviceRepository) Create(ctx context.Context, req *model.CreateServiceRequest) (int, error) {
	res, err := r.store.Call(ctx, procServices, sproc.OpInsert,
		nil, req.Name, req.Price, req.DurationMin,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create service: %w", err)
	}
	return res.Identity("ServicioID"), nil
}

func (r *serviceRepository) Update(ctx context.Context, id int, req *model.CreateServiceRequest) (int, error) {
	res, err := r.store.Call(ctx, procServices, sproc.OpUpdate,
		id, req.Name, req.Price, req.DurationMin,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update service: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int) (int, error) {
	res, err := r.store.Call(ctx, procServices, sproc.OpDelete,
		id, nil, nil, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete service: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}
