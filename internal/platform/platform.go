// Package platform derives the client signals the page adapts to: whether
// the client renders embedded documents poorly, whether it prefers reduced
// motion, and whether it is a narrow/mobile viewport.
//
// An Env is computed once per page load and treated as read-only after
// that; components receive it instead of inspecting headers themselves.
package platform

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// MobileBreakpoint is the viewport width below which the page uses its
// mobile layout.
const MobileBreakpoint = 768

// Client hint headers.
const (
	HeaderReducedMotion = "Sec-CH-Prefers-Reduced-Motion"
	HeaderMobile        = "Sec-CH-UA-Mobile"
	HeaderViewportWidth = "Sec-CH-Viewport-Width"
)

var constrainedUA = regexp.MustCompile(`(?i)iP(ad|hone|od)`)

// Env is the per-load view of the client.
type Env struct {
	// Constrained is set for clients known to render embedded documents
	// poorly.
	Constrained   bool
	ReducedMotion bool
	Mobile        bool
}

// ConstrainedUserAgent reports whether ua belongs to a platform family
// that cannot be trusted to display documents inline.
func ConstrainedUserAgent(ua string) bool {
	return constrainedUA.MatchString(ua)
}

// FromRequest reads the Env from request headers.
func FromRequest(r *http.Request) Env {
	env := Env{
		Constrained:   ConstrainedUserAgent(r.UserAgent()),
		ReducedMotion: strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderReducedMotion)), "reduce"),
	}

	if strings.TrimSpace(r.Header.Get(HeaderMobile)) == "?1" {
		env.Mobile = true
	}
	if w, err := strconv.Atoi(strings.TrimSpace(r.Header.Get(HeaderViewportWidth))); err == nil && w > 0 && w < MobileBreakpoint {
		env.Mobile = true
	}
	return env
}

// FromTerminal reads the Env for a terminal session. A dumb or unknown
// terminal cannot show anything beyond plain lines, so it is treated as
// constrained.
func FromTerminal(getenv func(string) string) Env {
	term := strings.TrimSpace(getenv("TERM"))
	reduced, _ := strconv.ParseBool(getenv("REDUCED_MOTION"))
	return Env{
		Constrained:   term == "" || term == "dumb",
		ReducedMotion: reduced,
	}
}

// Motion is the animation profile handed to templates.
type Motion struct {
	Reduce bool
	// DurationMS is the enter transition length.
	DurationMS int
	// Offset is the slide distance in pixels; zero disables sliding.
	Offset int
}

// Motion derives the animation profile. Mobile clients get the reduced
// profile as well.
func (e Env) Motion() Motion {
	if e.ReducedMotion || e.Mobile {
		return Motion{Reduce: true}
	}
	return Motion{DurationMS: 300, Offset: 20}
}

const contextKey = "platform.env"

// Middleware computes the Env once per request and stores it on the gin
// context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, FromRequest(c.Request))
		c.Next()
	}
}

// FromContext returns the Env stored by Middleware, computing it on the
// spot when the middleware did not run.
func FromContext(c *gin.Context) Env {
	if v, ok := c.Get(contextKey); ok {
		if env, ok := v.(Env); ok {
			return env
		}
	}
	return FromRequest(c.Request)
}
