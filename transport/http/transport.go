package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/endpoint"

	"github.com/flarexio/technozen"
	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/enquiry"
	"github.com/flarexio/technozen/site"
)

const siteNameKey = "site_name"

const InvalidEnquiryMessage = "Please check your name, email, phone and message, then try again."

func view(c *gin.Context, p *site.Page) *site.View {
	v := site.NewView(c.GetString(siteNameKey), p)
	v.CSRFToken = csrfToken(c)
	return v
}

func PageHandler(p *site.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := view(c, p)

		if p.Reference != "" && c.Query("success") == "true" {
			v.Success = true
			v.Reference = c.Query(p.Reference)
		}

		c.HTML(http.StatusOK, p.Name, v)
	}
}

func NotFoundHandler(c *gin.Context) {
	c.HTML(http.StatusNotFound, site.NotFound.Name, view(c, site.NotFound))
}

func renderError(c *gin.Context, code int, title string, message string) {
	v := view(c, site.Error)
	v.Title = title
	v.Message = message

	c.HTML(code, site.Error.Name, v)
}

func recovery(c *gin.Context, err any) {
	c.Abort()
	renderError(c, http.StatusInternalServerError, "Server Error", "Something went wrong. Please try again later.")
}

func SubmitEnquiryHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req technozen.SubmitEnquiryRequest
		if err := c.ShouldBind(&req); err != nil {
			c.Abort()
			c.Error(err)
			c.String(http.StatusBadRequest, InvalidEnquiryMessage)
			return
		}

		resp, err := endpoint(c, req)
		if err != nil {
			c.Abort()
			c.Error(err)
			c.String(http.StatusInternalServerError, "Error saving enquiry.")
			return
		}

		e, ok := resp.(*enquiry.Enquiry)
		if !ok {
			err := errors.New("invalid enquiry")
			c.Abort()
			c.Error(err)
			c.String(http.StatusInternalServerError, "Error saving enquiry.")
			return
		}

		location := "/contact?success=true&enquiry_id=" + url.QueryEscape(e.ID.String())
		c.Redirect(http.StatusSeeOther, location)
	}
}

func SubmitAdmissionHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req technozen.SubmitAdmissionRequest
		if err := c.ShouldBind(&req); err != nil {
			c.Abort()
			c.Error(err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp, err := endpoint(c, req)
		if err != nil {
			c.Abort()
			c.Error(err)

			var verr *admission.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}

			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: " + err.Error()})
			return
		}

		a, ok := resp.(*admission.Admission)
		if !ok {
			err := errors.New("invalid admission")
			c.Abort()
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: " + err.Error()})
			return
		}

		location := "/student-desk?success=true&student_id=" + url.QueryEscape(a.StudentID.String())
		c.Redirect(http.StatusSeeOther, location)
	}
}
