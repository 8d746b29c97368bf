package site

import "time"

type Crumb struct {
	Text string
	Link string
}

// Page describes a routable page and the copy rendered into its head.
type Page struct {
	Name        string
	Paths       []string
	Title       string
	Description string
	Breadcrumbs []Crumb

	// Reference names the query parameter echoed back after a
	// successful form submission.
	Reference string
}

var home = Crumb{"Home", "/"}

var (
	Home = &Page{
		Name:        "index",
		Paths:       []string{"/"},
		Title:       "Technozen India - Training in Chennai",
		Description: "Technozen India offers industry-leading CNC Programming and SOLIDWORKS training in Ambattur, Chennai.",
	}

	About = &Page{
		Name:        "about",
		Paths:       []string{"/about", "/about/our-story"},
		Title:       "About Technozen India",
		Description: "Learn about Technozen India’s mission to provide top-tier training in Ambattur, Chennai.",
		Breadcrumbs: []Crumb{home, {"About", "/about/our-story"}},
	}

	Contact = &Page{
		Name:        "contact",
		Paths:       []string{"/contact"},
		Title:       "Contact Technozen India",
		Description: "Get in touch with Technozen India for CNC and SOLIDWORKS training inquiries in Chennai.",
		Breadcrumbs: []Crumb{home, {"Contact", "/contact"}},
		Reference:   "enquiry_id",
	}

	StudentDesk = &Page{
		Name:        "student-desk",
		Paths:       []string{"/student-desk"},
		Title:       "Students Desk - Technozen India",
		Description: "Apply for CNC Programming or SOLIDWORKS training at Technozen India in Ambattur, Chennai.",
		Breadcrumbs: []Crumb{home, {"Student Desk", "/student-desk"}},
		Reference:   "student_id",
	}

	SolidWorks = &Page{
		Name:        "solid-works",
		Paths:       []string{"/training/solidworks"},
		Title:       "SOLIDWORKS Training in Chennai",
		Description: "Join Technozen India’s SOLIDWORKS training in Ambattur, Chennai, for hands-on learning and certification.",
		Breadcrumbs: []Crumb{home, {"Training", "/training"}, {"SolidWorks", "/training/solidworks"}},
	}

	CNCProgram = &Page{
		Name:        "cnc-program",
		Paths:       []string{"/training/cnc-program"},
		Title:       "CNC Programming Training in Chennai",
		Description: "Join Technozen India’s CNC Turning and Milling training in Ambattur, Chennai, for industry-ready skills.",
		Breadcrumbs: []Crumb{home, {"Training", "/training"}, {"CNC Program", "/training/cnc-program"}},
	}

	NotFound = &Page{
		Name:  "404",
		Title: "404 - Not Found",
	}

	Error = &Page{
		Name:  "error",
		Title: "Server Error",
	}
)

// Pages lists every page with a template, routable or not.
var Pages = []*Page{Home, About, Contact, StudentDesk, SolidWorks, CNCProgram, NotFound, Error}

// View is the data every template receives.
type View struct {
	SiteName    string
	Page        *Page
	Title       string
	Description string
	Breadcrumbs []Crumb
	CSRFToken   string
	Success     bool
	Reference   string
	Message     string
	Year        int
}

func NewView(siteName string, p *Page) *View {
	return &View{
		SiteName:    siteName,
		Page:        p,
		Title:       p.Title,
		Description: p.Description,
		Breadcrumbs: p.Breadcrumbs,
		Year:        time.Now().Year(),
	}
}
