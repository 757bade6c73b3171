package domain

// Service represents a salon service offered for booking
// Price is stored in cents to avoid floating-point error
type Service struct {
	ID          int64
	Name        string
	Description string
	Price       int // minor currency unit (cents)
	Duration    int // minutes, > 0
	IsActive    bool
}

// ServicePatch lists the service fields that are legal to mutate after creation
// Nil fields are left untouched
type ServicePatch struct {
	Name        *string
	Description *string
	Price       *int
	Duration    *int
	IsActive    *bool
}

// IsEmpty returns true if the patch does not change anything
func (p *ServicePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Duration == nil && p.IsActive == nil
}
