package technozen

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/enquiry"
)

func LoggingMiddleware(log *zap.Logger) ServiceMiddleware {
	return func(next Service) Service {
		return &loggingMiddleware{
			log.With(
				zap.String("service", "technozen"),
				zap.String("middleware", "logging"),
			),
			next,
		}
	}
}

type loggingMiddleware struct {
	log  *zap.Logger
	next Service
}

func (mw *loggingMiddleware) SubmitEnquiry(ctx context.Context, form enquiry.Form) (*enquiry.Enquiry, error) {
	log := mw.log.With(
		zap.String("action", "submit_enquiry"),
		zap.String("email", form.Email),
	)

	e, err := mw.next.SubmitEnquiry(ctx, form)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("enquiry submitted", zap.String("enquiry_id", e.ID.String()))
	return e, nil
}

func (mw *loggingMiddleware) SubmitAdmission(ctx context.Context, app admission.Application) (*admission.Admission, error) {
	log := mw.log.With(
		zap.String("action", "submit_admission"),
		zap.String("email", app.EmailID),
		zap.String("course", app.CourseInterested),
	)

	a, err := mw.next.SubmitAdmission(ctx, app)
	if err != nil {
		var verr *admission.ValidationError
		if errors.As(err, &verr) {
			log.Info("admission rejected",
				zap.String("field", verr.Field),
				zap.String("reason", verr.Message),
			)
			return nil, err
		}

		log.Error(err.Error())
		return nil, err
	}

	log.Info("admission submitted", zap.String("student_admission_id", a.StudentID.String()))
	return a, nil
}

func (mw *loggingMiddleware) Enquiries() ([]*enquiry.Enquiry, error) {
	log := mw.log.With(
		zap.String("action", "enquiries"),
	)

	all, err := mw.next.Enquiries()
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("enquiries listed", zap.Int("count", len(all)))
	return all, nil
}

func (mw *loggingMiddleware) Admissions() ([]*admission.Admission, error) {
	log := mw.log.With(
		zap.String("action", "admissions"),
	)

	all, err := mw.next.Admissions()
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("admissions listed", zap.Int("count", len(all)))
	return all, nil
}
