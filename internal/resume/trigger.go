package resume

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// SaveTrigger downloads a resource into a local directory. When saving is
// not possible it opens the resource in the system viewer instead.
type SaveTrigger struct {
	client *http.Client
	dir    string
	open   func(locator string) error
	notify func(path string, err error)
	logger *slog.Logger
}

// SaveOption configures a SaveTrigger.
type SaveOption func(*SaveTrigger)

// WithDir overrides the destination directory.
func WithDir(dir string) SaveOption {
	return func(t *SaveTrigger) { t.dir = dir }
}

// WithOpener overrides how the viewer fallback opens a locator.
func WithOpener(open func(locator string) error) SaveOption {
	return func(t *SaveTrigger) { t.open = open }
}

// WithNotify registers a hook receiving the saved path, or the save error
// when the viewer fallback was used.
func WithNotify(fn func(path string, err error)) SaveOption {
	return func(t *SaveTrigger) { t.notify = fn }
}

// NewSaveTrigger creates a trigger saving into the user's XDG download
// directory.
func NewSaveTrigger(client *http.Client, logger *slog.Logger, opts ...SaveOption) *SaveTrigger {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &SaveTrigger{
		client: client,
		dir:    xdg.UserDirs.Download,
		open:   OpenInViewer,
		logger: logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Trigger saves locator as filename. It blocks until the save or the
// fallback has been attempted.
func (t *SaveTrigger) Trigger(locator, filename string) {
	path, err := t.save(locator, filename)
	if err == nil {
		t.logger.Info("resume saved", "path", path)
		if t.notify != nil {
			t.notify(path, nil)
		}
		return
	}

	t.logger.Warn("resume save failed, opening viewer", "locator", locator, "error", err)
	if openErr := t.open(locator); openErr != nil {
		t.logger.Warn("open viewer failed", "locator", locator, "error", openErr)
	}
	if t.notify != nil {
		t.notify("", err)
	}
}

func (t *SaveTrigger) save(locator, filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid file name %q", filename)
	}
	if t.dir == "" {
		return "", fmt.Errorf("no download directory")
	}
	if err := os.MkdirAll(t.dir, 0755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, locator, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(t.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	dst := filepath.Join(t.dir, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("move file: %w", err)
	}
	return dst, nil
}

// OpenInViewer hands locator to the platform's default opener.
func OpenInViewer(locator string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", locator)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", locator)
	default:
		cmd = exec.Command("xdg-open", locator)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start viewer: %w", err)
	}
	go cmd.Wait()
	return nil
}
