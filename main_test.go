package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/resume"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "portfolio" {
		t.Errorf("Use = %q", cmd.Use)
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "probe", "tui", "version"} {
		if !names[want] {
			t.Errorf("missing %s subcommand", want)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "portfolio version") || !strings.Contains(buf.String(), "commit:") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProbeCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != resume.DocumentPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", resume.ContentType)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"origin", []string{"probe", srv.URL}, []string{"verdict: confirmed", "mode:    inline"}},
		{"constrained", []string{"probe", "--constrained", srv.URL}, []string{"verdict: confirmed", "mode:    platform"}},
		{"missing", []string{"probe", srv.URL + "/other.pdf"}, []string{"verdict: rejected", "mode:    thumbnail"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := NewRootCmd()
			cmd.SetOut(&buf)
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestProbeTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Resume.Origin = "https://zach.dev"

	tests := []struct {
		args []string
		want string
	}{
		{nil, "https://zach.dev" + resume.DocumentPath},
		{[]string{"http://localhost:8080"}, "http://localhost:8080" + resume.DocumentPath},
		{[]string{"http://localhost:8080/"}, "http://localhost:8080" + resume.DocumentPath},
		{[]string{"http://cdn.example/cv.PDF"}, "http://cdn.example/cv.PDF"},
		{[]string{"http://cdn.example/files/cv"}, "http://cdn.example/files/cv"},
	}

	for _, tt := range tests {
		if got := probeTarget(cfg, tt.args); got != tt.want {
			t.Errorf("probeTarget(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestPortfolioSections(t *testing.T) {
	sections := portfolioSections()
	if len(sections) == 0 {
		t.Fatal("no sections")
	}
	for _, s := range sections {
		if s.Title == "" || strings.TrimSpace(s.Body) == "" {
			t.Errorf("empty section %+v", s)
		}
	}
	if !strings.Contains(sections[1].Body, Projects[0].Title) {
		t.Error("projects section should list projects")
	}
}

func TestPortfolioProjects(t *testing.T) {
	projects := portfolioProjects()
	if len(projects) != len(Projects) {
		t.Fatalf("projects = %d, want %d", len(projects), len(Projects))
	}
	for i, p := range projects {
		if p.Title != Projects[i].Title || p.GithubURL != Projects[i].GithubURL || p.LiveURL != Projects[i].LiveURL {
			t.Errorf("project %d = %+v", i, p)
		}
		if p.Overview == "" || strings.Contains(p.Overview, "\n") {
			t.Errorf("project %d overview = %q", i, p.Overview)
		}
	}
}

func TestProjectBySlug(t *testing.T) {
	for _, p := range Projects {
		got, ok := ProjectBySlug(p.Slug)
		if !ok || got.Title != p.Title {
			t.Errorf("ProjectBySlug(%q) = %q, %v", p.Slug, got.Title, ok)
		}
	}
	if _, ok := ProjectBySlug("missing"); ok {
		t.Error("ProjectBySlug(missing) should not be found")
	}
	if _, ok := ProjectBySlug(""); ok {
		t.Error("ProjectBySlug(\"\") should not be found")
	}
}

func TestFilterProjects(t *testing.T) {
	if got := FilterProjects(""); len(got) != len(Projects) {
		t.Errorf("empty filter = %d projects", len(got))
	}
	if got := FilterProjects(" CLI "); len(got) != 2 {
		t.Errorf("cli filter = %d projects, want 2", len(got))
	}
	if got := FilterProjects("nope"); len(got) != len(Projects) {
		t.Errorf("unknown filter = %d projects", len(got))
	}
}
