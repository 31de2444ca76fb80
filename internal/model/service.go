package model

// Service is one entry of the service catalog referenced by appointment
// lines.
type Service struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
}

type ServiceFilters struct {
	ServiceID *int
	Name      *string
}
