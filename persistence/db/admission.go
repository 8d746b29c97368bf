package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
)

type Admission struct {
	StudentID              string `gorm:"primaryKey"`
	CenterName             string
	FirstName              string
	MiddleName             string
	LastName               string
	ContactNumber          string
	EmailID                string `gorm:"index"`
	CollegeName            string
	EducationQualification string
	CourseInterested       string
	SubCourse              string
	JoiningDate            string
	JoiningMonth           string
	BatchTime              string
	CurrentDesignation     string
	CurrentCompanyName     string
	YearsOfExperience      int
	Occupation             string
	Remarks                string
	DataModel
}

func NewAdmission(a *admission.Admission) *Admission {
	return &Admission{
		StudentID:              a.StudentID.String(),
		CenterName:             a.CenterName,
		FirstName:              a.FirstName,
		MiddleName:             a.MiddleName,
		LastName:               a.LastName,
		ContactNumber:          a.ContactNumber,
		EmailID:                a.EmailID,
		CollegeName:            a.CollegeName,
		EducationQualification: a.EducationQualification,
		CourseInterested:       a.CourseInterested,
		SubCourse:              a.SubCourse,
		JoiningDate:            a.JoiningDate,
		JoiningMonth:           a.JoiningMonth,
		BatchTime:              a.BatchTime,
		CurrentDesignation:     a.CurrentDesignation,
		CurrentCompanyName:     a.CurrentCompanyName,
		YearsOfExperience:      a.YearsOfExperience,
		Occupation:             a.Occupation,
		Remarks:                a.Remarks,
		DataModel: DataModel{
			CreatedAt: a.CreatedAt,
		},
	}
}

func (a *Admission) reconstitute() *admission.Admission {
	return &admission.Admission{
		CenterName:             a.CenterName,
		FirstName:              a.FirstName,
		MiddleName:             a.MiddleName,
		LastName:               a.LastName,
		ContactNumber:          a.ContactNumber,
		EmailID:                a.EmailID,
		CollegeName:            a.CollegeName,
		EducationQualification: a.EducationQualification,
		CourseInterested:       a.CourseInterested,
		SubCourse:              a.SubCourse,
		JoiningDate:            a.JoiningDate,
		JoiningMonth:           a.JoiningMonth,
		BatchTime:              a.BatchTime,
		CurrentDesignation:     a.CurrentDesignation,
		CurrentCompanyName:     a.CurrentCompanyName,
		YearsOfExperience:      a.YearsOfExperience,
		Occupation:             a.Occupation,
		Remarks:                a.Remarks,
		StudentID:              admission.StudentID(a.StudentID),
		CreatedAt:              a.CreatedAt.UTC(),
	}
}

func NewAdmissionRepository(cfg conf.Persistence) (*AdmissionRepository, error) {
	db, err := open(cfg, &Admission{})
	if err != nil {
		return nil, err
	}

	repo := new(AdmissionRepository)
	repo.db = db
	return repo, nil
}

type AdmissionRepository struct {
	db *gorm.DB
}

func (repo *AdmissionRepository) DB() *gorm.DB {
	return repo.db
}

func (repo *AdmissionRepository) Store(a *admission.Admission) error {
	model := NewAdmission(a) // convert Domain to Data model

	err := repo.db.Create(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return admission.ErrStudentIDTaken
	}

	return err
}

func (repo *AdmissionRepository) ListAll() ([]*admission.Admission, error) {
	var admissions []*Admission

	result := repo.db.Order("created_at").Find(&admissions)
	if err := result.Error; err != nil {
		return nil, err
	}

	results := make([]*admission.Admission, 0, len(admissions))
	for _, a := range admissions {
		results = append(results, a.reconstitute())
	}

	return results, nil
}

func (repo *AdmissionRepository) Find(id admission.StudentID) (*admission.Admission, error) {
	var a *Admission

	result := repo.db.Take(&a, "student_id = ?", id.String())
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admission.ErrAdmissionNotFound
		}

		return nil, err
	}

	return a.reconstitute(), nil
}

func (repo *AdmissionRepository) Close() error {
	sqlDB, err := repo.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func (repo *AdmissionRepository) Truncate() error {
	return repo.db.Exec("DELETE FROM admissions").Error
}
