package platform

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestConstrainedUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X)", true},
		{"Mozilla/5.0 (iPod touch; CPU iPhone OS 12_5 like Mac OS X)", true},
		{"mozilla/5.0 (IPHONE)", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", false},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8)", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ConstrainedUserAgent(tt.ua); got != tt.want {
			t.Errorf("ConstrainedUserAgent(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    Env
	}{
		{
			name: "desktop",
			headers: map[string]string{
				"User-Agent": "Mozilla/5.0 (X11; Linux x86_64)",
			},
			want: Env{},
		},
		{
			name: "ios with reduced motion",
			headers: map[string]string{
				"User-Agent":        "Mozilla/5.0 (iPhone)",
				HeaderReducedMotion: "reduce",
				HeaderMobile:        "?1",
			},
			want: Env{Constrained: true, ReducedMotion: true, Mobile: true},
		},
		{
			name: "narrow viewport",
			headers: map[string]string{
				HeaderViewportWidth: "390",
			},
			want: Env{Mobile: true},
		},
		{
			name: "wide viewport, no preference",
			headers: map[string]string{
				HeaderViewportWidth: "1440",
				HeaderReducedMotion: "no-preference",
				HeaderMobile:        "?0",
			},
			want: Env{},
		},
		{
			name: "garbage width",
			headers: map[string]string{
				HeaderViewportWidth: "wide",
			},
			want: Env{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := FromRequest(r); got != tt.want {
				t.Errorf("FromRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFromTerminal(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	if got := FromTerminal(env(map[string]string{"TERM": "xterm-256color"})); got.Constrained {
		t.Error("xterm should not be constrained")
	}
	if got := FromTerminal(env(map[string]string{"TERM": "dumb"})); !got.Constrained {
		t.Error("dumb terminal should be constrained")
	}
	if got := FromTerminal(env(map[string]string{})); !got.Constrained {
		t.Error("missing TERM should be constrained")
	}
	if got := FromTerminal(env(map[string]string{"TERM": "xterm", "REDUCED_MOTION": "true"})); !got.ReducedMotion {
		t.Error("REDUCED_MOTION=true should set ReducedMotion")
	}
}

func TestEnv_Motion(t *testing.T) {
	if m := (Env{}).Motion(); m.Reduce || m.DurationMS == 0 {
		t.Errorf("default Motion() = %+v, want animated", m)
	}
	if m := (Env{ReducedMotion: true}).Motion(); !m.Reduce || m.DurationMS != 0 || m.Offset != 0 {
		t.Errorf("reduced Motion() = %+v, want zero profile", m)
	}
	if m := (Env{Mobile: true}).Motion(); !m.Reduce {
		t.Errorf("mobile Motion() = %+v, want reduced", m)
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())

	var got Env
	r.GET("/", func(c *gin.Context) {
		got = FromContext(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPad)")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if !got.Constrained {
		t.Errorf("FromContext() = %+v, want constrained", got)
	}
}
