package http

import (
	"io/fs"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-contrib/secure"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/flarexio/technozen"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/site"
)

const DefaultContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://www.google.com https://www.gstatic.com 'unsafe-inline' https://cdnjs.cloudflare.com https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com https://cdn.jsdelivr.net https://fonts.googleapis.com https://fonts.gstatic.com; " +
	"frame-src 'self' https://www.google.com; " +
	"img-src 'self' data: https://cdnjs.cloudflare.com; " +
	"connect-src 'self' https://ipapi.co; " +
	"font-src 'self' https://fonts.gstatic.com; " +
	"base-uri 'self'; form-action 'self'; frame-ancestors 'self'; object-src 'none'"

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]*[0-9]$`)

// validatePhone accepts 7 to 20 characters, counting a leading plus.
func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if len(phone) < 7 || len(phone) > 20 {
		return false
	}

	return phonePattern.MatchString(phone)
}

type Options struct {
	SiteName  string
	Env       conf.Environment
	Security  conf.Security
	Templates fs.FS
	Static    fs.FS
}

func Secure(env conf.Environment, cfg conf.Security) gin.HandlerFunc {
	csp := cfg.ContentSecurityPolicy
	if csp == "" {
		csp = DefaultContentSecurityPolicy
	}

	config := secure.Config{
		SSLTemporaryRedirect:  true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ContentSecurityPolicy: csp,
		ReferrerPolicy:        "no-referrer",
	}

	if env == conf.Production {
		config.SSLRedirect = true
		config.STSSeconds = 15552000
		config.STSIncludeSubdomains = true
	}

	return secure.New(config)
}

func NewRouter(endpoints technozen.EndpointSet, opts Options, log *zap.Logger) (*gin.Engine, error) {
	render, err := site.NewRenderer(opts.Templates)
	if err != nil {
		return nil, err
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("phone", validatePhone); err != nil {
			return nil, err
		}
	}

	assets, err := fs.Sub(opts.Static, "assets")
	if err != nil {
		return nil, err
	}

	csrf := NewCSRF(opts.Security.CSRF.Secret, opts.Security.CSRF.TTL)
	limiter := NewRateLimiter(opts.Security.RateLimit.Window, opts.Security.RateLimit.Max)

	r := gin.New()
	r.HTMLRender = render

	if err := r.SetTrustedProxies(opts.Security.TrustedProxies); err != nil {
		return nil, err
	}

	r.Use(
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.CustomRecoveryWithZap(log, true, recovery),
		Secure(opts.Env, opts.Security),
		func(c *gin.Context) {
			c.Set(siteNameKey, opts.SiteName)
		},
	)

	// GET /assets/*
	r.StaticFS("/assets", http.FS(assets))

	// GET /robots.txt
	r.GET("/robots.txt", func(c *gin.Context) {
		c.FileFromFS("robots.txt", http.FS(opts.Static))
	})

	r.Use(
		limiter.Middleware(),
		csrf.Middleware(),
	)

	for _, p := range site.Pages {
		for _, path := range p.Paths {
			r.GET(path, PageHandler(p))
		}
	}

	// POST /contact
	r.POST("/contact", SubmitEnquiryHandler(endpoints.SubmitEnquiry))

	// POST /student-desk
	r.POST("/student-desk", SubmitAdmissionHandler(endpoints.SubmitAdmission))

	r.NoRoute(NotFoundHandler)

	return r, nil
}
