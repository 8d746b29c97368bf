package inmem

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/enquiry"
)

func NewEnquiryRepository() (*EnquiryRepository, error) {
	return &EnquiryRepository{
		enquiries: make(map[uuid.UUID]*enquiry.Enquiry),
	}, nil
}

type EnquiryRepository struct {
	enquiries map[uuid.UUID]*enquiry.Enquiry
	sync.RWMutex
}

func (repo *EnquiryRepository) Store(e *enquiry.Enquiry) error {
	repo.Lock()
	defer repo.Unlock()

	clone := *e
	repo.enquiries[e.ID] = &clone
	return nil
}

func (repo *EnquiryRepository) ListAll() ([]*enquiry.Enquiry, error) {
	repo.RLock()
	defer repo.RUnlock()

	all := make([]*enquiry.Enquiry, 0, len(repo.enquiries))
	for _, e := range repo.enquiries {
		clone := *e
		all = append(all, &clone)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp < all[j].Timestamp
	})

	return all, nil
}

func (repo *EnquiryRepository) Find(id uuid.UUID) (*enquiry.Enquiry, error) {
	repo.RLock()
	defer repo.RUnlock()

	e, ok := repo.enquiries[id]
	if !ok {
		return nil, enquiry.ErrEnquiryNotFound
	}

	clone := *e
	return &clone, nil
}

func (repo *EnquiryRepository) Close() error {
	return nil
}

func (repo *EnquiryRepository) Truncate() error {
	repo.Lock()
	defer repo.Unlock()

	repo.enquiries = make(map[uuid.UUID]*enquiry.Enquiry)
	return nil
}

func NewAdmissionRepository() (*AdmissionRepository, error) {
	return &AdmissionRepository{
		admissions: make(map[admission.StudentID]*admission.Admission),
	}, nil
}

type AdmissionRepository struct {
	admissions map[admission.StudentID]*admission.Admission
	sync.RWMutex
}

func (repo *AdmissionRepository) Store(a *admission.Admission) error {
	repo.Lock()
	defer repo.Unlock()

	if _, ok := repo.admissions[a.StudentID]; ok {
		return admission.ErrStudentIDTaken
	}

	clone := *a
	repo.admissions[a.StudentID] = &clone
	return nil
}

func (repo *AdmissionRepository) ListAll() ([]*admission.Admission, error) {
	repo.RLock()
	defer repo.RUnlock()

	all := make([]*admission.Admission, 0, len(repo.admissions))
	for _, a := range repo.admissions {
		clone := *a
		all = append(all, &clone)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	return all, nil
}

func (repo *AdmissionRepository) Find(id admission.StudentID) (*admission.Admission, error) {
	repo.RLock()
	defer repo.RUnlock()

	a, ok := repo.admissions[id]
	if !ok {
		return nil, admission.ErrAdmissionNotFound
	}

	clone := *a
	return &clone, nil
}

func (repo *AdmissionRepository) Close() error {
	return nil
}

func (repo *AdmissionRepository) Truncate() error {
	repo.Lock()
	defer repo.Unlock()

	repo.admissions = make(map[admission.StudentID]*admission.Admission)
	return nil
}
