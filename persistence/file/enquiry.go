package file

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

const EnquiryFile = "contact_enquiry.json"

func NewEnquiryRepository(cfg conf.Persistence) (*EnquiryRepository, error) {
	c, err := NewCollection[*enquiry.Enquiry](filepath.Join(cfg.Host, EnquiryFile))
	if err != nil {
		return nil, err
	}

	return &EnquiryRepository{c}, nil
}

type EnquiryRepository struct {
	enquiries *Collection[*enquiry.Enquiry]
}

func (repo *EnquiryRepository) Store(e *enquiry.Enquiry) error {
	return repo.enquiries.Append(e)
}

func (repo *EnquiryRepository) ListAll() ([]*enquiry.Enquiry, error) {
	return repo.enquiries.All()
}

func (repo *EnquiryRepository) Find(id uuid.UUID) (*enquiry.Enquiry, error) {
	all, err := repo.enquiries.All()
	if err != nil {
		return nil, err
	}

	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}

	return nil, enquiry.ErrEnquiryNotFound
}

func (repo *EnquiryRepository) Close() error {
	return nil
}

func (repo *EnquiryRepository) Truncate() error {
	return repo.enquiries.Truncate()
}
