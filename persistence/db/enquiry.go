package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

type Enquiry struct {
	ID        string `gorm:"primaryKey"`
	Username  string
	Email     string `gorm:"index"`
	Subject   string
	Phone     string
	Message   string
	Date      time.Time
	Timestamp int64 `gorm:"index"`
	DataModel
}

func NewEnquiry(e *enquiry.Enquiry) *Enquiry {
	return &Enquiry{
		ID:        e.ID.String(),
		Username:  e.Username,
		Email:     e.Email,
		Subject:   e.Subject,
		Phone:     e.Phone,
		Message:   e.Message,
		Date:      e.Date,
		Timestamp: e.Timestamp,
		DataModel: DataModel{
			CreatedAt: e.Date,
		},
	}
}

func (e *Enquiry) reconstitute() (*enquiry.Enquiry, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return nil, err
	}

	return &enquiry.Enquiry{
		ID:        id,
		Username:  e.Username,
		Email:     e.Email,
		Subject:   e.Subject,
		Phone:     e.Phone,
		Message:   e.Message,
		Date:      e.Date.UTC(),
		Timestamp: e.Timestamp,
	}, nil
}

func NewEnquiryRepository(cfg conf.Persistence) (*EnquiryRepository, error) {
	db, err := open(cfg, &Enquiry{})
	if err != nil {
		return nil, err
	}

	repo := new(EnquiryRepository)
	repo.db = db
	return repo, nil
}

type EnquiryRepository struct {
	db *gorm.DB
}

func (repo *EnquiryRepository) DB() *gorm.DB {
	return repo.db
}

func (repo *EnquiryRepository) Store(e *enquiry.Enquiry) error {
	enquiry := NewEnquiry(e) // convert Domain to Data model

	return repo.db.Save(enquiry).Error
}

func (repo *EnquiryRepository) ListAll() ([]*enquiry.Enquiry, error) {
	var enquiries []*Enquiry

	result := repo.db.Order("timestamp").Find(&enquiries)
	if err := result.Error; err != nil {
		return nil, err
	}

	results := make([]*enquiry.Enquiry, 0, len(enquiries))
	for _, e := range enquiries {
		domain, err := e.reconstitute()
		if err != nil {
			return nil, err
		}

		results = append(results, domain)
	}

	return results, nil
}

func (repo *EnquiryRepository) Find(id uuid.UUID) (*enquiry.Enquiry, error) {
	var e *Enquiry

	result := repo.db.Take(&e, "id = ?", id.String())
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enquiry.ErrEnquiryNotFound
		}

		return nil, err
	}

	return e.reconstitute()
}

func (repo *EnquiryRepository) Close() error {
	sqlDB, err := repo.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func (repo *EnquiryRepository) Truncate() error {
	return repo.db.Exec("DELETE FROM enquiries").Error
}
