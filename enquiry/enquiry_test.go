package enquiry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type enquiryTestSuite struct {
	suite.Suite
	now time.Time
}

func (suite *enquiryTestSuite) SetupTest() {
	suite.now = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
}

func (suite *enquiryTestSuite) TestNewEnquiry() {
	e := NewEnquiry(Form{
		Username: "Priya",
		Email:    "priya@example.com",
		Subject:  "Batches",
		Phone:    "+91 98123 45678",
		Message:  "When does the next batch start?",
	}, suite.now)

	suite.NotEqual(uuid.Nil, e.ID)
	suite.Equal(uuid.Version(4), e.ID.Version())
	suite.Equal("Priya", e.Username)
	suite.Equal("+91 98123 45678", e.Phone)
	suite.Equal(time.UTC, e.Date.Location())
	suite.Equal(suite.now.UnixMilli(), e.Timestamp)
}

func (suite *enquiryTestSuite) TestSanitize() {
	e := NewEnquiry(Form{
		Username: "<b>Priya</b>",
		Message:  `<script>alert(1)</script>Call <a href="x">me</a>`,
	}, suite.now)

	suite.Equal("Priya", e.Username)
	suite.Equal("Call me", e.Message)
}

func (suite *enquiryTestSuite) TestSanitizeKeepsText() {
	e := NewEnquiry(Form{
		Username: "O'Brien",
		Subject:  "Fees & timings",
		Message:  `I'm keen on "CNC" & SOLIDWORKS`,
	}, suite.now)

	suite.Equal("O'Brien", e.Username)
	suite.Equal("Fees & timings", e.Subject)
	suite.Equal(`I'm keen on "CNC" & SOLIDWORKS`, e.Message)
}

func TestEnquiryTestSuite(t *testing.T) {
	suite.Run(t, new(enquiryTestSuite))
}
