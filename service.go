package technozen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/enquiry"
	"github.com/flarexio/technozen/notify"
)

const maxStudentIDAttempts = 10

var (
	ErrStudentIDExhausted = errors.New("could not allocate a unique student admission id")
)

type Service interface {
	SubmitEnquiry(ctx context.Context, form enquiry.Form) (*enquiry.Enquiry, error)
	SubmitAdmission(ctx context.Context, app admission.Application) (*admission.Admission, error)
	Enquiries() ([]*enquiry.Enquiry, error)
	Admissions() ([]*admission.Admission, error)
}

type ServiceMiddleware func(Service) Service

func NewService(enquiries enquiry.Repository, admissions admission.Repository, notifier notify.Notifier) Service {
	return &service{
		enquiries:  enquiries,
		admissions: admissions,
		notifier:   notifier,
		now:        time.Now,
	}
}

type service struct {
	enquiries  enquiry.Repository
	admissions admission.Repository
	notifier   notify.Notifier
	now        func() time.Time
}

func (svc *service) SubmitEnquiry(ctx context.Context, form enquiry.Form) (*enquiry.Enquiry, error) {
	e := enquiry.NewEnquiry(form, svc.now())

	if err := svc.enquiries.Store(e); err != nil {
		return nil, err
	}

	if svc.notifier != nil {
		if err := svc.notifier.EnquiryReceived(ctx, e); err != nil {
			zap.L().Warn("enquiry acknowledgement failed",
				zap.String("enquiry_id", e.ID.String()),
				zap.Error(err),
			)
		}
	}

	return e, nil
}

func (svc *service) SubmitAdmission(ctx context.Context, app admission.Application) (*admission.Admission, error) {
	a, err := admission.NewAdmission(app, svc.now())
	if err != nil {
		return nil, err
	}

	// Re-roll the student id until the repository accepts it
	stored := false
	for i := 0; i < maxStudentIDAttempts; i++ {
		err := svc.admissions.Store(a)
		if err == nil {
			stored = true
			break
		}

		if !errors.Is(err, admission.ErrStudentIDTaken) {
			return nil, fmt.Errorf("failed to store admission: %w", err)
		}

		a.StudentID = admission.NewStudentID(a.SubCourse)
	}

	if !stored {
		return nil, ErrStudentIDExhausted
	}

	if svc.notifier != nil {
		if err := svc.notifier.AdmissionReceived(ctx, a); err != nil {
			zap.L().Warn("admission acknowledgement failed",
				zap.String("student_admission_id", a.StudentID.String()),
				zap.Error(err),
			)
		}
	}

	return a, nil
}

func (svc *service) Enquiries() ([]*enquiry.Enquiry, error) {
	return svc.enquiries.ListAll()
}

func (svc *service) Admissions() ([]*admission.Admission, error) {
	return svc.admissions.ListAll()
}
