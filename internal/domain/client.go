package domain

import "time"

// Client represents a salon client, created on first booking
// Phone is the natural dedup key: the booking flow looks up by phone
// before creating a duplicate record
type Client struct {
	ID        int64
	FullName  string
	Phone     string
	CreatedAt time.Time
}

// ClientPatch lists the client fields that are legal to mutate after creation
type ClientPatch struct {
	FullName *string
	Phone    *string
}

// IsEmpty returns true if the patch does not change anything
func (p *ClientPatch) IsEmpty() bool {
	return p.FullName == nil && p.Phone == nil
}
