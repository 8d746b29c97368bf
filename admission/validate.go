package admission

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	lettersPattern   = regexp.MustCompile(`^[A-Za-z]+$`)
	contactPattern   = regexp.MustCompile(`^\+\d{1,15}$`)
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	batchTimePattern = regexp.MustCompile(`^\d{1,2}:00 AM - \d{1,2}:00 AM$`)
)

// ValidationError is a rejected application. Message is safe to show to
// the applicant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// Validate checks the application in form order and reports the first
// failure. On success it returns the parsed years of experience.
func Validate(app Application, now time.Time) (int, error) {
	if !strings.Contains(app.CenterName, CenterName) {
		return 0, invalid("centerName", `Center name must include "Technozen India".`)
	}

	if !lettersPattern.MatchString(app.FirstName) || !lettersPattern.MatchString(app.LastName) {
		return 0, invalid("firstName", "First and Last Name must contain only letters.")
	}

	if app.MiddleName != "" && !lettersPattern.MatchString(app.MiddleName) {
		return 0, invalid("middleName", "Middle Name must contain only letters.")
	}

	if app.ContactNumber == "" {
		return 0, invalid("contactNumber", "Contact number is required.")
	}

	if !contactPattern.MatchString(app.ContactNumber) {
		return 0, invalid("contactNumber", "Contact number must be in international format (e.g., +919876543210).")
	}

	if !emailPattern.MatchString(app.EmailID) {
		return 0, invalid("emailId", "Invalid email address.")
	}

	if !slices.Contains(Qualifications, app.EducationQualification) {
		return 0, invalid("educationQualification", "Invalid education qualification.")
	}

	if !slices.Contains(Courses, app.CourseInterested) {
		return 0, invalid("courseInterested", "Invalid course selection.")
	}

	switch app.CourseInterested {
	case Mechanical:
		if !slices.Contains(SubCourses, app.SubCourse) {
			return 0, invalid("subCourse", "Invalid sub-course selection.")
		}
	case Civil:
		if app.SubCourse != "" {
			return 0, invalid("subCourse", "Invalid sub-course selection.")
		}
	}

	if !joinable(app.JoiningDate, now) {
		return 0, invalid("joiningDate", "Joining date must be today or later.")
	}

	if app.JoiningMonth == "" {
		return 0, invalid("joiningMonth", "Joining month is required.")
	}

	if !batchTimePattern.MatchString(app.BatchTime) {
		return 0, invalid("batchTime", "Invalid batch time format.")
	}

	years, err := strconv.Atoi(strings.TrimSpace(app.YearsOfExperience))
	if err != nil || years < 0 || years > 20 {
		return 0, invalid("yearsOfExperience", "Years of experience must be between 0 and 20.")
	}

	if !slices.Contains(Occupations, app.Occupation) {
		return 0, invalid("occupation", "Invalid occupation.")
	}

	return years, nil
}

// joinable compares calendar dates in now's location.
func joinable(date string, now time.Time) bool {
	if date == "" {
		return false
	}

	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return false
	}

	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())

	return !d.Before(today)
}
