package resume

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// rangeBytes is how much of the document the fallback request asks for.
const rangeBytes = 1024

// Prober checks that a document is retrievable and has the expected type.
type Prober struct {
	client   *http.Client
	expected string
	logger   *slog.Logger
}

// NewProber creates a prober expecting PDF documents. A nil client uses
// http.DefaultClient; timeouts, if any, come from the client.
func NewProber(client *http.Client, logger *slog.Logger) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		client:   client,
		expected: ContentType,
		logger:   logger,
	}
}

// Probe returns Confirmed, Rejected or Unknown for locator. It issues a
// HEAD request first and falls back to a ranged GET when the HEAD is
// blocked, fails, or does not declare the expected type. Failures are
// logged and folded into the verdict; nothing is returned as an error.
func (p *Prober) Probe(ctx context.Context, locator string) Verdict {
	log := p.logger.With("locator", locator)

	ok, err := p.head(ctx, locator)
	if err != nil {
		log.Debug("resume head probe failed", "error", err)
	}
	if ok {
		log.Debug("resume confirmed by head probe")
		return Confirmed
	}

	v, err := p.rangeGet(ctx, locator)
	if err != nil {
		log.Debug("resume range probe failed", "error", err)
	}
	log.Debug("resume probe finished", "verdict", v.String())
	return v
}

func (p *Prober) head(ctx context.Context, locator string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, locator, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return p.matches(resp.Header.Get("Content-Type")), nil
}

func (p *Prober) rangeGet(ctx context.Context, locator string) (Verdict, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return Unknown, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", rangeBytes-1))

	resp, err := p.client.Do(req)
	if err != nil {
		return Unknown, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return Rejected, nil
	case !success(resp.StatusCode):
		return Unknown, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if p.matches(ct) {
			return Confirmed, nil
		}
		return Rejected, nil
	}

	// No declared type: look at the bytes themselves.
	head, err := io.ReadAll(io.LimitReader(resp.Body, rangeBytes))
	if err != nil {
		return Unknown, fmt.Errorf("read body: %w", err)
	}
	return p.sniff(head), nil
}

// sniff classifies a body prefix when the server declared no type.
func (p *Prober) sniff(head []byte) Verdict {
	if len(head) == 0 {
		return Unknown
	}
	mt := mimetype.Detect(head)
	switch {
	case mt.Is(p.expected):
		return Confirmed
	case mt.Is("application/octet-stream"):
		return Unknown
	}
	return Rejected
}

// matches reports whether a declared content type names the expected
// document type. Only the subtype token is compared, so vendor variants
// such as application/x-pdf also match.
func (p *Prober) matches(contentType string) bool {
	ct := strings.ToLower(contentType)
	if ct == "" {
		return false
	}
	sub := p.expected
	if i := strings.IndexByte(sub, '/'); i >= 0 {
		sub = sub[i+1:]
	}
	return strings.Contains(ct, sub)
}

func success(code int) bool {
	return code >= 200 && code < 300
}
