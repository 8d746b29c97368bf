package kv

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

type kvRepositoryTestSuite struct {
	suite.Suite
	enquiries  *EnquiryRepository
	admissions *AdmissionRepository
	enquiry    *enquiry.Enquiry
}

func (suite *kvRepositoryTestSuite) SetupSuite() {
	cfg := conf.Persistence{
		Driver: conf.BadgerDB,
		Name:   "technozen",
		InMem:  true,
	}

	enquiries, err := NewEnquiryRepository(cfg)
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	admissions, err := NewAdmissionRepository(cfg)
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.enquiries = enquiries
	suite.admissions = admissions
}

func (suite *kvRepositoryTestSuite) SetupTest() {
	suite.enquiries.Truncate()
	suite.admissions.Truncate()

	e := enquiry.NewEnquiry(enquiry.Form{
		Username: "Priya",
		Email:    "priya@example.com",
		Message:  "Is there a weekend batch?",
	}, time.Date(2026, time.July, 1, 8, 0, 0, 0, time.UTC))
	suite.enquiries.Store(e)

	suite.enquiry = e
}

func (suite *kvRepositoryTestSuite) TestFindEnquiry() {
	e, err := suite.enquiries.Find(suite.enquiry.ID)
	suite.NoError(err)
	suite.Equal("Priya", e.Username)
	suite.Equal("Is there a weekend batch?", e.Message)
}

func (suite *kvRepositoryTestSuite) TestListEnquiries() {
	e := enquiry.NewEnquiry(enquiry.Form{Username: "Ravi"},
		time.Date(2026, time.June, 30, 8, 0, 0, 0, time.UTC))
	suite.NoError(suite.enquiries.Store(e))

	all, err := suite.enquiries.ListAll()
	suite.NoError(err)
	suite.Len(all, 2)
	suite.Equal("Ravi", all[0].Username)
	suite.Equal("Priya", all[1].Username)
}

func (suite *kvRepositoryTestSuite) TestTruncate() {
	err := suite.enquiries.Truncate()
	suite.NoError(err)

	_, err = suite.enquiries.Find(suite.enquiry.ID)
	suite.Error(err)
	suite.Equal(enquiry.ErrEnquiryNotFound, err)
}

func (suite *kvRepositoryTestSuite) TestAdmissions() {
	a := &admission.Admission{
		FirstName: "Arun",
		StudentID: "TIND/CNC/23456",
		CreatedAt: time.Now().UTC(),
	}
	suite.NoError(suite.admissions.Store(a))

	found, err := suite.admissions.Find("TIND/CNC/23456")
	suite.NoError(err)
	suite.Equal("Arun", found.FirstName)

	_, err = suite.admissions.Find("TIND/CNC/65432")
	suite.Equal(admission.ErrAdmissionNotFound, err)

	all, err := suite.admissions.ListAll()
	suite.NoError(err)
	suite.Len(all, 1)
}

func (suite *kvRepositoryTestSuite) TestConcurrentSameStudentID() {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ok    int
		taken int
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			a := &admission.Admission{StudentID: "TIND/CNC/34567", CreatedAt: time.Now().UTC()}
			err := suite.admissions.Store(a)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				ok++
			case errors.Is(err, admission.ErrStudentIDTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, ok)
	suite.Equal(9, taken)
}

func (suite *kvRepositoryTestSuite) TearDownSuite() {
	suite.enquiries.Close()
	suite.admissions.Close()
}

func TestKVRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(kvRepositoryTestSuite))
}
