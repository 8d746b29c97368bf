package kv

import (
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

func NewEnquiryRepository(cfg conf.Persistence) (*EnquiryRepository, error) {
	db, err := open(cfg, "enquiries")
	if err != nil {
		return nil, err
	}

	return &EnquiryRepository{
		db:        db,
		enquiries: &bucket[*enquiry.Enquiry]{db, "enquiries"},
	}, nil
}

type EnquiryRepository struct {
	db        *badger.DB
	enquiries *bucket[*enquiry.Enquiry]
}

func (repo *EnquiryRepository) Store(e *enquiry.Enquiry) error {
	return repo.enquiries.put(e.ID.String(), e)
}

func (repo *EnquiryRepository) ListAll() ([]*enquiry.Enquiry, error) {
	all, err := repo.enquiries.all()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp < all[j].Timestamp
	})

	return all, nil
}

func (repo *EnquiryRepository) Find(id uuid.UUID) (*enquiry.Enquiry, error) {
	e, err := repo.enquiries.get(id.String())
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, enquiry.ErrEnquiryNotFound
		}

		return nil, err
	}

	return e, nil
}

func (repo *EnquiryRepository) Close() error {
	return repo.db.Close()
}

func (repo *EnquiryRepository) Truncate() error {
	return repo.enquiries.truncate()
}

func NewAdmissionRepository(cfg conf.Persistence) (*AdmissionRepository, error) {
	db, err := open(cfg, "admissions")
	if err != nil {
		return nil, err
	}

	return &AdmissionRepository{
		db:         db,
		admissions: &bucket[*admission.Admission]{db, "admissions"},
	}, nil
}

type AdmissionRepository struct {
	db         *badger.DB
	admissions *bucket[*admission.Admission]
}

func (repo *AdmissionRepository) Store(a *admission.Admission) error {
	err := repo.admissions.insert(a.StudentID.String(), a)
	if errors.Is(err, errExists) {
		return admission.ErrStudentIDTaken
	}

	return err
}

func (repo *AdmissionRepository) ListAll() ([]*admission.Admission, error) {
	all, err := repo.admissions.all()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	return all, nil
}

func (repo *AdmissionRepository) Find(id admission.StudentID) (*admission.Admission, error) {
	a, err := repo.admissions.get(id.String())
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, admission.ErrAdmissionNotFound
		}

		return nil, err
	}

	return a, nil
}

func (repo *AdmissionRepository) Close() error {
	return repo.db.Close()
}

func (repo *AdmissionRepository) Truncate() error {
	return repo.admissions.truncate()
}
