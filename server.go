package main

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/platform"
	"github.com/Zachkp/portfolio/internal/resume"
)

//go:embed templates/*.html
var templateFS embed.FS

const requestIDHeader = "X-Request-ID"

// verdictSource is whatever holds the current resume verdict; normally the
// resume.Cell mounted at startup.
type verdictSource interface {
	Verdict() resume.Verdict
}

type server struct {
	cfg     *config.Config
	logger  *slog.Logger
	verdict verdictSource
	metrics *Metrics
}

// contactForm is the contact section submission.
type contactForm struct {
	FullName string `form:"fullName" binding:"required,max=100"`
	Email    string `form:"email" binding:"required,email,max=254"`
	Message  string `form:"message" binding:"required,max=2000"`
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"join":  strings.Join,
		"title": titleCase,
		"year":  func() int { return time.Now().Year() },
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// newRouter wires every route. metrics may be nil.
func newRouter(cfg *config.Config, logger *slog.Logger, verdict verdictSource, metrics *Metrics) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &server{cfg: cfg, logger: logger, verdict: verdict, metrics: metrics}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(logger), platform.Middleware())
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.SetHTMLTemplate(tmpl)

	r.Static("/images", cfg.Server.ImagesDir)
	r.Static("/static", cfg.Server.StaticDir)

	r.GET("/", s.index)

	// HTMX fragments
	r.GET("/contact-form", s.contactForm)
	r.GET("/work-content", s.workContent)
	r.GET("/education-content", s.educationContent)
	r.GET("/projects", s.projects)
	r.GET("/projects/:slug", s.projectDetail)
	r.POST("/contact", s.contact)

	r.GET("/resume/preview", s.resumePreview)
	r.GET(resume.DownloadPath, s.resumeDownload)

	if metrics != nil && cfg.Metrics.StatsEnabled {
		r.GET("/stats", s.stats)
	}

	return r, nil
}

// requestID tags every request with an id, reusing the caller's when
// present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
			"duration", time.Since(start).String(),
			"request_id", c.GetString("request_id"),
		)
	}
}

func (s *server) index(c *gin.Context) {
	env := platform.FromContext(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"nav":         NavLinks,
		"tagline":     HeroTagline,
		"stats":       QuickStats,
		"categories":  ProjectCategories,
		"filter":      CategoryAll,
		"projects":    Projects,
		"skills":      Skills,
		"aboutMe":     AboutMe,
		"motion":      env.Motion(),
		"resumeThumb": resume.ThumbnailPath,
	})
}

func (s *server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
	})
}

func (s *server) workContent(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content.html", gin.H{
		"jobs": WorkHistory,
	})
}

func (s *server) educationContent(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{
		"jobs": Education,
	})
}

func (s *server) projects(c *gin.Context) {
	filter := strings.ToLower(c.DefaultQuery("filter", CategoryAll))
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"categories": ProjectCategories,
		"filter":     filter,
		"projects":   FilterProjects(filter),
	})
}

// projectDetail renders the detail dialog for one project card.
func (s *server) projectDetail(c *gin.Context) {
	p, ok := ProjectBySlug(c.Param("slug"))
	if !ok {
		c.String(http.StatusNotFound, "Project not found")
		return
	}
	c.HTML(http.StatusOK, "project-modal.html", gin.H{
		"project": p,
		"motion":  platform.FromContext(c).Motion(),
	})
}

// contact validates the submission and acknowledges it. Nothing is sent.
func (s *server) contact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":  "Please check the highlighted fields and try again.",
			"fields": fieldErrors(err),
		})
		return
	}

	ref := uuid.NewString()
	s.logger.Info("contact form accepted",
		"reference", ref,
		"name_length", len(form.FullName),
		"message_length", len(form.Message),
	)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success":   "Thank you for your message! I'll get back to you soon.",
		"name":      form.FullName,
		"reference": ref,
	})
}

// fieldErrors maps validation failures to one message per form field.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "The form could not be read."
		return out
	}

	names := map[string]string{"FullName": "fullName", "Email": "email", "Message": "message"}
	for _, fe := range verrs {
		field := names[fe.Field()]
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		default:
			out[field] = "This value is not valid."
		}
	}
	return out
}

// resumePreview renders the dialog for the current verdict and the
// requesting platform.
func (s *server) resumePreview(c *gin.Context) {
	env := platform.FromContext(c)
	p := resume.NewPreview(s.verdict.Verdict(), env.Constrained, "")

	if s.metrics != nil {
		mode := p.Mode.String()
		s.metrics.async(func() { s.metrics.RecordResume(EventPreview, mode) })
	}

	c.HTML(http.StatusOK, "resume-modal.html", gin.H{
		"preview": p,
		"motion":  env.Motion(),
	})
}

// resumeDownload serves the document as an attachment under its
// suggested file name.
func (s *server) resumeDownload(c *gin.Context) {
	path := filepath.Join(s.cfg.Server.StaticDir, "resume", resume.Filename)
	if _, err := os.Stat(path); err != nil {
		s.logger.Warn("resume download unavailable", "path", path, "error", err)
		c.String(http.StatusNotFound, "Resume not available")
		return
	}

	if s.metrics != nil {
		s.metrics.async(func() { s.metrics.RecordResume(EventDownload, "") })
	}
	c.FileAttachment(path, resume.Filename)
}

func (s *server) stats(c *gin.Context) {
	stats, err := s.metrics.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
