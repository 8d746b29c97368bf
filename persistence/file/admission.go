package file

import (
	"errors"
	"path/filepath"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
)

const AdmissionFile = "admissions.json"

func NewAdmissionRepository(cfg conf.Persistence) (*AdmissionRepository, error) {
	c, err := NewCollection[*admission.Admission](filepath.Join(cfg.Host, AdmissionFile))
	if err != nil {
		return nil, err
	}

	return &AdmissionRepository{c}, nil
}

type AdmissionRepository struct {
	admissions *Collection[*admission.Admission]
}

func (repo *AdmissionRepository) Store(a *admission.Admission) error {
	err := repo.admissions.AppendUnique(a, func(existing *admission.Admission) bool {
		return existing.StudentID == a.StudentID
	})

	if errors.Is(err, ErrDuplicate) {
		return admission.ErrStudentIDTaken
	}

	return err
}

func (repo *AdmissionRepository) ListAll() ([]*admission.Admission, error) {
	return repo.admissions.All()
}

func (repo *AdmissionRepository) Find(id admission.StudentID) (*admission.Admission, error) {
	all, err := repo.admissions.All()
	if err != nil {
		return nil, err
	}

	for _, a := range all {
		if a.StudentID == id {
			return a, nil
		}
	}

	return nil, admission.ErrAdmissionNotFound
}

func (repo *AdmissionRepository) Close() error {
	return nil
}

func (repo *AdmissionRepository) Truncate() error {
	return repo.admissions.Truncate()
}
