package mysql

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

type clientRepository struct {
	store sproc.Store
}

func NewClientRepository(store sproc.Store) repository.ClientRepository {
	return &clientRepository{store: store}
}

func (r *clientRepository) List(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error) {
	if filters == nil {
		filters = &model.ClientFilters{}
	}
	res, err := r.store.Call(ctx, procClients, sproc.OpList,
		filters.ClientID, filters.FirstName, filters.LastName, nil, filters.Email, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil, nil
	}
	clients := make([]*model.Client, 0, len(t.Rows))
	for _, row := range t.Rows {
		clients = append(clients, mapClient(row))
	}
	return clients, nil
}

func (r *clientRepository) Get(ctx context.Context, id int) (*model.Client, error) {
	clients, err := r.List(ctx, &model.ClientFilters{ClientID: &id})
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, nil
	}
	return clients[0], nil
}

func (r *clientRepository) Create(ctx context.Context, req *model.CreateClientRequest) (int, error) {
	res, err := r.store.Call(ctx, procClients, sproc.OpInsert,
		nil, req.FirstName, nullable(req.LastName), nullable(req.Phone), nullable(req.Email), nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create client: %w", err)
	}
	return res.Identity("ClienteID"), nil
}

func (r *clientRepository) Update(ctx context.Context, id int, req *model.UpdateClientRequest) (int, error) {
	res, err := r.store.Call(ctx, procClients, sproc.OpUpdate,
		id, req.FirstName, req.LastName, req.Phone, req.Email, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update client: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

func (r *clientRepository) Delete(ctx context.Context, id int) (int, error) {
	res, err := r.store.Call(ctx, procClients, sproc.OpDelete,
		id, nil, nil, nil, nil, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete client: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

func mapClient(row sproc.Row) *model.Client {
	return &model.Client{
		ID:           row.Int("ClienteID", 0),
		FirstName:    row.String("Nombre"),
		LastName:     row.String("Apellidos"),
		Phone:        row.String("Telefono"),
		Email:        row.String("CorreoElectronico"),
		RegisteredAt: row.OptionalTime("FechaRegistro"),
	}
}
