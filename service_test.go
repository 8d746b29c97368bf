package technozen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/enquiry"
	"github.com/flarexio/technozen/persistence/inmem"
)

type recordingNotifier struct {
	enquiries  []*enquiry.Enquiry
	admissions []*admission.Admission
	err        error
}

func (n *recordingNotifier) EnquiryReceived(ctx context.Context, e *enquiry.Enquiry) error {
	n.enquiries = append(n.enquiries, e)
	return n.err
}

func (n *recordingNotifier) AdmissionReceived(ctx context.Context, a *admission.Admission) error {
	n.admissions = append(n.admissions, a)
	return n.err
}

// takenAdmissions rejects the first taken inserts as duplicates.
type takenAdmissions struct {
	*inmem.AdmissionRepository
	taken int
	calls int
}

func (repo *takenAdmissions) Store(a *admission.Admission) error {
	repo.calls++
	if repo.calls <= repo.taken {
		return admission.ErrStudentIDTaken
	}

	return repo.AdmissionRepository.Store(a)
}

var errDiskFull = errors.New("disk full")

type failingAdmissions struct {
	admission.Repository
}

func (failingAdmissions) Store(a *admission.Admission) error {
	return errDiskFull
}

type serviceTestSuite struct {
	suite.Suite
	enquiries  *inmem.EnquiryRepository
	admissions *inmem.AdmissionRepository
	notifier   *recordingNotifier
	svc        Service
}

func (suite *serviceTestSuite) SetupTest() {
	enquiries, _ := inmem.NewEnquiryRepository()
	admissions, _ := inmem.NewAdmissionRepository()

	suite.enquiries = enquiries
	suite.admissions = admissions
	suite.notifier = new(recordingNotifier)

	svc := NewService(enquiries, admissions, suite.notifier)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.January, 5, 10, 0, 0, 0, time.Local)
	}

	suite.svc = LoggingMiddleware(zap.NewNop())(svc)
}

func (suite *serviceTestSuite) application() admission.Application {
	return admission.Application{
		CenterName:             "Technozen India",
		FirstName:              "Meena",
		LastName:               "Raj",
		ContactNumber:          "+919812345678",
		EmailID:                "meena@example.com",
		EducationQualification: "Diploma",
		CourseInterested:       admission.Mechanical,
		SubCourse:              admission.CNCProgramming,
		JoiningDate:            "2026-01-12",
		JoiningMonth:           "January",
		BatchTime:              "10:00 AM - 11:00 AM",
		YearsOfExperience:      "0",
		Occupation:             "Fresher",
	}
}

func (suite *serviceTestSuite) TestSubmitEnquiry() {
	e, err := suite.svc.SubmitEnquiry(context.Background(), enquiry.Form{
		Username: "Priya",
		Email:    "priya@example.com",
		Message:  "<b>Hello</b>",
	})
	suite.Require().NoError(err)
	suite.Equal("Hello", e.Message)

	stored, err := suite.enquiries.Find(e.ID)
	suite.NoError(err)
	suite.Equal("Priya", stored.Username)

	suite.Len(suite.notifier.enquiries, 1)

	all, err := suite.svc.Enquiries()
	suite.NoError(err)
	suite.Len(all, 1)
}

func (suite *serviceTestSuite) TestSubmitAdmission() {
	a, err := suite.svc.SubmitAdmission(context.Background(), suite.application())
	suite.Require().NoError(err)
	suite.Equal("CNC", a.StudentID.Code())

	stored, err := suite.admissions.Find(a.StudentID)
	suite.NoError(err)
	suite.Equal("Meena", stored.FirstName)

	suite.Len(suite.notifier.admissions, 1)

	all, err := suite.svc.Admissions()
	suite.NoError(err)
	suite.Len(all, 1)
}

func (suite *serviceTestSuite) TestRejectedAdmissionIsNotStored() {
	app := suite.application()
	app.JoiningDate = "2026-01-04"

	_, err := suite.svc.SubmitAdmission(context.Background(), app)

	var verr *admission.ValidationError
	suite.True(errors.As(err, &verr))
	suite.Equal("joiningDate", verr.Field)

	all, _ := suite.admissions.ListAll()
	suite.Empty(all)
	suite.Empty(suite.notifier.admissions)
}

func (suite *serviceTestSuite) TestNotificationFailureKeepsSubmission() {
	suite.notifier.err = errors.New("smtp down")

	a, err := suite.svc.SubmitAdmission(context.Background(), suite.application())
	suite.NoError(err)
	suite.NotNil(a)

	e, err := suite.svc.SubmitEnquiry(context.Background(), enquiry.Form{Username: "Priya", Email: "priya@example.com"})
	suite.NoError(err)
	suite.NotNil(e)
}

func (suite *serviceTestSuite) TestStudentIDCollisionRetries() {
	repo := &takenAdmissions{AdmissionRepository: suite.admissions, taken: 3}
	svc := NewService(suite.enquiries, repo, nil)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.January, 5, 10, 0, 0, 0, time.Local)
	}

	a, err := svc.SubmitAdmission(context.Background(), suite.application())
	suite.Require().NoError(err)
	suite.Equal(4, repo.calls)

	_, err = suite.admissions.Find(a.StudentID)
	suite.NoError(err)
}

func (suite *serviceTestSuite) TestStudentIDExhausted() {
	repo := &takenAdmissions{AdmissionRepository: suite.admissions, taken: maxStudentIDAttempts}
	svc := NewService(suite.enquiries, repo, nil)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.January, 5, 10, 0, 0, 0, time.Local)
	}

	_, err := svc.SubmitAdmission(context.Background(), suite.application())
	suite.ErrorIs(err, ErrStudentIDExhausted)
}

func (suite *serviceTestSuite) TestStoreFailure() {
	svc := NewService(suite.enquiries, failingAdmissions{suite.admissions}, nil)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.January, 5, 10, 0, 0, 0, time.Local)
	}

	_, err := svc.SubmitAdmission(context.Background(), suite.application())
	suite.ErrorIs(err, errDiskFull)
}

func (suite *serviceTestSuite) TestConcurrentAdmissionsKeepUniqueIDs() {
	svc := NewService(suite.enquiries, suite.admissions, nil)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.January, 5, 10, 0, 0, 0, time.Local)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitAdmission(context.Background(), suite.application())
			suite.NoError(err)
		}()
	}
	wg.Wait()

	all, err := suite.admissions.ListAll()
	suite.Require().NoError(err)
	suite.Len(all, 50)

	seen := make(map[admission.StudentID]bool)
	for _, a := range all {
		suite.False(seen[a.StudentID], a.StudentID)
		seen[a.StudentID] = true
	}
}

func (suite *serviceTestSuite) TestEndpoints() {
	endpoints := NewEndpointSet(suite.svc)

	resp, err := endpoints.SubmitEnquiry(context.Background(), SubmitEnquiryRequest{
		Username: "Priya",
		Email:    "priya@example.com",
		Message:  "Hi",
	})
	suite.Require().NoError(err)
	suite.IsType(new(enquiry.Enquiry), resp)

	_, err = endpoints.SubmitEnquiry(context.Background(), "bad")
	suite.Error(err)

	req := SubmitAdmissionRequest{
		CenterName:             "Technozen India",
		FirstName:              "Meena",
		LastName:               "Raj",
		ContactNumber:          "+919812345678",
		EmailID:                "meena@example.com",
		EducationQualification: "Diploma",
		CourseInterested:       admission.Civil,
		JoiningDate:            "2026-01-05",
		JoiningMonth:           "January",
		BatchTime:              "7:00 AM - 9:00 AM",
		YearsOfExperience:      "20",
		Occupation:             "Student",
	}

	resp, err = endpoints.SubmitAdmission(context.Background(), req)
	suite.Require().NoError(err)
	suite.Equal(20, resp.(*admission.Admission).YearsOfExperience)

	resp, err = endpoints.Admissions(context.Background(), nil)
	suite.NoError(err)
	suite.Len(resp, 1)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(serviceTestSuite))
}
