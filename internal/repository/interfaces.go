package repository

import (
	"context"

	"github.com/beautycare/scheduling-api/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository maintains the appointment aggregate. Create,
	// Update, and Delete each run as one transaction covering the header and
	// every service line; no partial state survives a failure.
	AppointmentRepository interface {
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		Get(ctx context.Context, id int) (*model.Appointment, error)
		Create(ctx context.Context, header *model.AppointmentHeader, serviceIDs []int) (int, error)
		Update(ctx context.Context, id int, header *model.AppointmentHeader, serviceIDs []int) (int, error)
		Delete(ctx context.Context, id int) (int, error)
	}

	// AppointmentLineRepository manages service lines independently of the
	// aggregate writer. None of these operations hold a transaction across
	// calls; see ReplaceAll for the consequences.
	AppointmentLineRepository interface {
		List(ctx context.Context, appointmentID, serviceID *int) ([]*model.AppointmentLine, error)
		ListDetailed(ctx context.Context, appointmentID int, serviceID *int) ([]*model.AppointmentLineDetail, error)
		Total(ctx context.Context, appointmentID int) (float64, error)
		Insert(ctx context.Context, appointmentID, serviceID int, quantity *int, unitPrice *float64) (int, error)
		Delete(ctx context.Context, appointmentID, serviceID int) (int, error)
		ReplaceAll(ctx context.Context, appointmentID int, serviceIDs []int) (int, error)
	}

	ClientRepository interface {
		List(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error)
		Get(ctx context.Context, id int) (*model.Client, error)
		Create(ctx context.Context, req *model.CreateClientRequest) (int, error)
		Update(ctx context.Context, id int, req *model.UpdateClientRequest) (int, error)
		Delete(ctx context.Context, id int) (int, error)
	}

	StaffRepository interface {
		List(ctx context.Context, filters *model.StaffFilters) ([]*model.Staff, error)
		Get(ctx context.Context, id int) (*model.Staff, error)
		Create(ctx context.Context, req *model.CreateStaffRequest) (int, error)
		Update(ctx context.Context, id int, req *model.CreateStaffRequest) (int, error)
		Delete(ctx context.Context, id int) (int, error)
	}

	ServiceRepository interface {
		List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error)
		Get(ctx context.Context, id int) (*model.Service, error)
		Create(ctx context.Context, req *model.CreateServiceRequest) (int, error)
		Update(ctx context.Context, id int, req *model.CreateServiceRequest) (int, error)
		Delete(ctx context.Context, id int) (int, error)
	}

	UserRepository interface {
		Authenticate(ctx context.Context, username, password string) (*model.User, error)
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
		Get(ctx context.Context, id int) (*model.User, error)
		Create(ctx context.Context, username, passwordHash, role string) (int, error)
		Update(ctx context.Context, id int, username, passwordHash, role *string) (int, error)
		Delete(ctx context.Context, id int) (int, error)
	}
)
