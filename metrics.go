// metrics.go - privacy-conscious visitor and resume event tracking
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"
)

// Resume event kinds.
const (
	EventPreview  = "preview"
	EventDownload = "download"
)

// VisitorMetric is one tracked page view. The client address is only
// ever stored as a salted hash.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats is the aggregate view served by /stats.
type Stats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	UniqueVisitors   int64            `json:"unique_visitors"`
	VisitorsToday    int64            `json:"visitors_today"`
	VisitorsThisWeek int64            `json:"visitors_this_week"`
	ResumePreviews   int64            `json:"resume_previews"`
	ResumeDownloads  int64            `json:"resume_downloads"`
	PreviewModes     map[string]int64 `json:"preview_modes"`
	RecentVisitors   []VisitorMetric  `json:"recent_visitors"`
}

// Metrics records visits and resume events in SQLite.
type Metrics struct {
	db        *sql.DB
	salt      string
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time

	wg sync.WaitGroup
}

const metricsSchema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE TABLE IF NOT EXISTS resume_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	mode TEXT,
	timestamp INTEGER NOT NULL
);`

// OpenMetrics opens the store at dsn and creates its tables.
func OpenMetrics(dsn string, retention time.Duration, logger *slog.Logger) (*Metrics, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open metrics db: %w", err)
	}
	// A single connection keeps shared in-memory databases alive and
	// serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(metricsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create metrics tables: %w", err)
	}

	salt, err := newSalt()
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("visitor tracking enabled with hashed IP addresses", "retention", retention.String())
	return &Metrics{
		db:        db,
		salt:      salt,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func newSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate hashing salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP returns a consistent per-process hash of ip.
func (m *Metrics) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + m.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Middleware tracks page views in the background. Static assets and HTMX
// fragment requests are skipped so one page load counts once, and Do Not
// Track is respected.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/favicon") ||
			path == "/stats" {
			c.Next()
			return
		}

		if c.GetHeader("HX-Request") == "true" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		m.async(func() { m.TrackVisit(ip, ua, path) })
		c.Next()
	}
}

func (m *Metrics) async(fn func()) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		fn()
	}()
}

// flush waits for background writes.
func (m *Metrics) flush() { m.wg.Wait() }

// TrackVisit stores one page view.
func (m *Metrics) TrackVisit(ip, userAgent, path string) {
	_, err := m.db.Exec(
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		m.hashIP(ip), userAgent, path, m.now().Unix(),
	)
	if err != nil {
		m.logger.Error("record visitor", "error", err)
	}
}

// RecordResume stores a resume preview or download. mode is empty for
// downloads.
func (m *Metrics) RecordResume(kind, mode string) {
	_, err := m.db.Exec(
		`INSERT INTO resume_events (kind, mode, timestamp) VALUES (?, ?, ?)`,
		kind, mode, m.now().Unix(),
	)
	if err != nil {
		m.logger.Error("record resume event", "kind", kind, "error", err)
	}
}

// Cleanup removes rows older than the retention window.
func (m *Metrics) Cleanup(ctx context.Context) (int64, error) {
	cutoff := m.now().Add(-m.retention).Unix()

	var removed int64
	for _, table := range []string{"visitors", "resume_events"} {
		res, err := m.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return removed, fmt.Errorf("clean %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}

	if removed > 0 {
		m.logger.Info("privacy cleanup removed old records", "rows", removed)
	}
	return removed, nil
}

// RunCleanup calls Cleanup now and then every interval until ctx ends.
func (m *Metrics) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := m.Cleanup(ctx); err != nil && ctx.Err() == nil {
			m.logger.Error("metrics cleanup", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stats aggregates the stored metrics.
func (m *Metrics) Stats(ctx context.Context) (*Stats, error) {
	now := m.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()
	week := now.Add(-7 * 24 * time.Hour).Unix()

	stats := &Stats{PreviewModes: map[string]int64{}}

	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{week}, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM resume_events WHERE kind = ?`, []any{EventPreview}, &stats.ResumePreviews},
		{`SELECT COUNT(*) FROM resume_events WHERE kind = ?`, []any{EventDownload}, &stats.ResumeDownloads},
	}
	for _, q := range counts {
		if err := m.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("query stats: %w", err)
		}
	}

	rows, err := m.db.QueryContext(ctx,
		`SELECT mode, COUNT(*) FROM resume_events WHERE kind = ? GROUP BY mode`, EventPreview)
	if err != nil {
		return nil, fmt.Errorf("query preview modes: %w", err)
	}
	for rows.Next() {
		var mode string
		var n int64
		if err := rows.Scan(&mode, &n); err != nil {
			continue
		}
		stats.PreviewModes[mode] = n
	}
	rows.Close()

	rows, err = m.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("query recent visitors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v VisitorMetric
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			continue
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}

	return stats, rows.Err()
}

// Close waits for pending writes and closes the database.
func (m *Metrics) Close() error {
	m.flush()
	return m.db.Close()
}
