package resume

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveTrigger_Saves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 body"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	var opened []string
	var notified string
	tr := NewSaveTrigger(srv.Client(), testLogger(),
		WithDir(dir),
		WithOpener(func(l string) error { opened = append(opened, l); return nil }),
		WithNotify(func(path string, err error) {
			if err != nil {
				t.Errorf("notify error = %v", err)
			}
			notified = path
		}),
	)

	tr.Trigger(srv.URL+DocumentPath, Filename)

	want := filepath.Join(dir, Filename)
	if notified != want {
		t.Errorf("notified path = %q, want %q", notified, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "%PDF-1.4 body" {
		t.Errorf("saved content = %q", data)
	}
	if len(opened) != 0 {
		t.Errorf("viewer opened %v on success", opened)
	}
}

func TestSaveTrigger_FallsBackToViewer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	var opened []string
	var gotErr error
	tr := NewSaveTrigger(srv.Client(), testLogger(),
		WithDir(t.TempDir()),
		WithOpener(func(l string) error { opened = append(opened, l); return nil }),
		WithNotify(func(_ string, err error) { gotErr = err }),
	)

	locator := srv.URL + DocumentPath
	tr.Trigger(locator, Filename)

	if len(opened) != 1 || opened[0] != locator {
		t.Errorf("opened = %v, want [%s]", opened, locator)
	}
	if gotErr == nil {
		t.Error("notify should receive the save error")
	}
}

func TestSaveTrigger_StripsDirectories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	tr := NewSaveTrigger(srv.Client(), testLogger(), WithDir(dir), WithOpener(func(string) error { return nil }))
	tr.Trigger(srv.URL, "../../escape.pdf")

	if _, err := os.Stat(filepath.Join(dir, "escape.pdf")); err != nil {
		t.Errorf("expected file inside download dir: %v", err)
	}
}
