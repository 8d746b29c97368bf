package admission

import (
	"errors"
	"fmt"
	"html"
	"math/rand"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrAdmissionNotFound = errors.New("admission not found")
	ErrStudentIDTaken    = errors.New("student admission id already taken")
)

const CenterName = "Technozen India"

const (
	Mechanical = "Mechanical"
	Civil      = "Civil"

	SolidWorks     = "SOLIDWORKS"
	CNCProgramming = "CNC Programming"
)

var (
	Qualifications = []string{"Diploma", "B.E./B.Tech", "M.E./M.Tech", "Other"}
	Courses        = []string{Mechanical, Civil}
	SubCourses     = []string{SolidWorks, CNCProgramming}
	Occupations    = []string{"Student", "Professional", "Fresher", "Entrepreneur"}
)

var policy = bluemonday.StrictPolicy()

// sanitize drops markup but not the characters a template escapes anyway.
func sanitize(s string) string {
	return html.UnescapeString(policy.Sanitize(s))
}

// StudentID has the form TIND/<course code>/<five digits>.
type StudentID string

func NewStudentID(subCourse string) StudentID {
	code := "CNC"
	if subCourse == SolidWorks {
		code = "SOL"
	}

	n := 10000 + rand.Intn(90000)
	return StudentID(fmt.Sprintf("TIND/%s/%d", code, n))
}

func (id StudentID) String() string {
	return string(id)
}

// Code returns the course code segment of the id.
func (id StudentID) Code() string {
	ss := strings.Split(string(id), "/")
	if len(ss) != 3 {
		return ""
	}

	return ss[1]
}

// Application is the raw admission form as submitted.
type Application struct {
	CenterName             string
	FirstName              string
	MiddleName             string
	LastName               string
	ContactNumber          string
	EmailID                string
	CollegeName            string
	EducationQualification string
	CourseInterested       string
	SubCourse              string
	JoiningDate            string
	JoiningMonth           string
	BatchTime              string
	CurrentDesignation     string
	CurrentCompanyName     string
	YearsOfExperience      string
	Occupation             string
	Remarks                string
}

type Admission struct {
	CenterName             string    `json:"centerName"`
	FirstName              string    `json:"firstName"`
	MiddleName             string    `json:"middleName"`
	LastName               string    `json:"lastName"`
	ContactNumber          string    `json:"contactNumber"`
	EmailID                string    `json:"emailId"`
	CollegeName            string    `json:"collegeName"`
	EducationQualification string    `json:"educationQualification"`
	CourseInterested       string    `json:"courseInterested"`
	SubCourse              string    `json:"subCourse"`
	JoiningDate            string    `json:"joiningDate"`
	JoiningMonth           string    `json:"joiningMonth"`
	BatchTime              string    `json:"batchTime"`
	CurrentDesignation     string    `json:"currentDesignation"`
	CurrentCompanyName     string    `json:"currentCompanyName"`
	YearsOfExperience      int       `json:"yearsOfExperience"`
	Occupation             string    `json:"occupation"`
	Remarks                string    `json:"remarks"`
	StudentID              StudentID `json:"student_admission_id"`
	CreatedAt              time.Time `json:"createdAt"`
}

// NewAdmission validates the application against now and returns the
// sanitized record. The returned error is a *ValidationError when the
// application is rejected.
func NewAdmission(app Application, now time.Time) (*Admission, error) {
	years, err := Validate(app, now)
	if err != nil {
		return nil, err
	}

	a := &Admission{
		CenterName:             sanitize(app.CenterName),
		FirstName:              sanitize(app.FirstName),
		MiddleName:             sanitize(app.MiddleName),
		LastName:               sanitize(app.LastName),
		ContactNumber:          sanitize(app.ContactNumber),
		EmailID:                sanitize(app.EmailID),
		CollegeName:            sanitize(app.CollegeName),
		EducationQualification: sanitize(app.EducationQualification),
		CourseInterested:       sanitize(app.CourseInterested),
		SubCourse:              sanitize(app.SubCourse),
		JoiningDate:            sanitize(app.JoiningDate),
		JoiningMonth:           sanitize(app.JoiningMonth),
		BatchTime:              sanitize(app.BatchTime),
		CurrentDesignation:     sanitize(app.CurrentDesignation),
		CurrentCompanyName:     sanitize(app.CurrentCompanyName),
		YearsOfExperience:      years,
		Occupation:             sanitize(app.Occupation),
		Remarks:                sanitize(app.Remarks),
		StudentID:              NewStudentID(app.SubCourse),
		CreatedAt:              now.UTC(),
	}

	return a, nil
}

// FullName joins the non-empty name parts.
func (a *Admission) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}
