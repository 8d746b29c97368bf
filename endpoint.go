package technozen

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-kit/kit/endpoint"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/enquiry"
)

type EndpointSet struct {
	SubmitEnquiry   endpoint.Endpoint
	SubmitAdmission endpoint.Endpoint
	Enquiries       endpoint.Endpoint
	Admissions      endpoint.Endpoint
}

func NewEndpointSet(svc Service) EndpointSet {
	return EndpointSet{
		SubmitEnquiry:   SubmitEnquiryEndpoint(svc),
		SubmitAdmission: SubmitAdmissionEndpoint(svc),
		Enquiries:       EnquiriesEndpoint(svc),
		Admissions:      AdmissionsEndpoint(svc),
	}
}

type SubmitEnquiryRequest struct {
	Username string `form:"username" json:"username" binding:"required,max=100"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Subject  string `form:"subject" json:"subject" binding:"max=200"`
	Phone    string `form:"phone" json:"phone" binding:"omitempty,phone"`
	Message  string `form:"message" json:"message" binding:"required,max=5000"`
}

func SubmitEnquiryEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req, ok := request.(SubmitEnquiryRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		form := enquiry.Form{
			Username: req.Username,
			Email:    req.Email,
			Subject:  req.Subject,
			Phone:    req.Phone,
			Message:  req.Message,
		}

		e, err := svc.SubmitEnquiry(ctx, form)
		if err != nil {
			return nil, err
		}

		return e, nil
	}
}

type SubmitAdmissionRequest struct {
	CenterName             string `form:"centerName" json:"centerName"`
	FirstName              string `form:"firstName" json:"firstName"`
	MiddleName             string `form:"middleName" json:"middleName"`
	LastName               string `form:"lastName" json:"lastName"`
	ContactNumber          string `form:"contactNumber" json:"contactNumber"`
	EmailID                string `form:"emailId" json:"emailId"`
	CollegeName            string `form:"collegeName" json:"collegeName"`
	EducationQualification string `form:"educationQualification" json:"educationQualification"`
	CourseInterested       string `form:"courseInterested" json:"courseInterested"`
	SubCourse              string `form:"subCourse" json:"subCourse"`
	JoiningDate            string `form:"joiningDate" json:"joiningDate"`
	JoiningMonth           string `form:"joiningMonth" json:"joiningMonth"`
	BatchTime              string `form:"batchTime" json:"batchTime"`
	CurrentDesignation     string `form:"currentDesignation" json:"currentDesignation"`
	CurrentCompanyName     string `form:"currentCompanyName" json:"currentCompanyName"`
	YearsOfExperience      Years  `form:"yearsOfExperience" json:"yearsOfExperience"`
	Occupation             string `form:"occupation" json:"occupation"`
	Remarks                string `form:"remarks" json:"remarks"`
}

// Years holds the raw experience value. JSON clients may send it as a
// number or a string.
type Years string

func (y *Years) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*y = Years(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*y = Years(n.String())
	return nil
}

func (req SubmitAdmissionRequest) Application() admission.Application {
	return admission.Application{
		CenterName:             req.CenterName,
		FirstName:              req.FirstName,
		MiddleName:             req.MiddleName,
		LastName:               req.LastName,
		ContactNumber:          req.ContactNumber,
		EmailID:                req.EmailID,
		CollegeName:            req.CollegeName,
		EducationQualification: req.EducationQualification,
		CourseInterested:       req.CourseInterested,
		SubCourse:              req.SubCourse,
		JoiningDate:            req.JoiningDate,
		JoiningMonth:           req.JoiningMonth,
		BatchTime:              req.BatchTime,
		CurrentDesignation:     req.CurrentDesignation,
		CurrentCompanyName:     req.CurrentCompanyName,
		YearsOfExperience:      string(req.YearsOfExperience),
		Occupation:             req.Occupation,
		Remarks:                req.Remarks,
	}
}

func SubmitAdmissionEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req, ok := request.(SubmitAdmissionRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		a, err := svc.SubmitAdmission(ctx, req.Application())
		if err != nil {
			return nil, err
		}

		return a, nil
	}
}

func EnquiriesEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		return svc.Enquiries()
	}
}

func AdmissionsEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		return svc.Admissions()
	}
}
