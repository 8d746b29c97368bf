package enquiry

import "github.com/google/uuid"

type Repository interface {
	// Command

	Store(e *Enquiry) error

	// Query

	ListAll() ([]*Enquiry, error)
	Find(id uuid.UUID) (*Enquiry, error)

	Close() error
}
