package mysql

import (
	"context"
	"fmt"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/repository"
	"github.com/beautycare/scheduling-api/internal/repository/sproc"
)

type userRepository struct {
	store sproc.Store
}

func NewUserRepository(store sproc.Store) repository.UserRepository {
	return &userRepository{store: store}
}

// Authenticate runs the credential check inside the store; AUTH_LOGIN takes
// no operation code and returns the matched user row or nothing.
func (r *userRepository) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	res, err := r.store.CallDirect(ctx, procLogin, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	t := res.First()
	if t == nil || len(t.Rows) == 0 {
		return nil, nil
	}
	return mapUser(t.Rows[0]), nil
}

func (r *userRepository) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	if filters == nil {
		filters = &model.UserFilters{}
	}
	res, err := r.store.Call(ctx, procUsers, sproc.OpList,
		filters.UserID, filters.Username, nil, filters.Role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	t := res.First()
	if t == nil {
		return nil, nil
	}
	users := make([]*model.User, 0, len(t.Rows))
	for _, row := range t.Rows {
		users = append(users, mapUser(row))
	}
	return users, nil
}

func (r *userRepository) Get(ctx context.Context, id int) (*model.User, error) {
	users, err := r.List(ctx, &model.UserFilters{UserID: &id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (r *userRepository) Create(ctx context.Context, username, passwordHash, role string) (int, error) {
	res, err := r.store.Call(ctx, procUsers, sproc.OpInsert,
		nil, username, passwordHash, role,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return res.Identity("UsuarioID"), nil
}

func (r *userRepository) Update(ctx context.Context, id int, username, passwordHash, role *string) (int, error) {
	res, err := r.store.Call(ctx, procUsers, sproc.OpUpdate,
		id, username, passwordHash, role,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update user: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

func (r *userRepository) Delete(ctx context.Context, id int) (int, error) {
	res, err := r.store.Call(ctx, procUsers, sproc.OpDelete,
		id, nil, nil, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.ScalarInt("Afectados"), nil
}

func mapUser(row sproc.Row) *model.User {
	return &model.User{
		ID:       row.Int("UsuarioID", 0),
		Username: row.String("NombreUsuario"),
		Role:     row.String("Rol"),
	}
}
