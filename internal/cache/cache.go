// Package cache stores expansion results keyed by source and project
// configuration, so unchanged files skip re-expansion across builds.
// Entries live in a SQLite database under .tether/ in the project
// directory.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// codegenVersion is bumped when the emitted definition format changes,
// so stale cached expansions are regenerated.
const codegenVersion = "v1"

// Cache is the per-project expansion cache.
type Cache struct {
	projectDir string
	db         *sql.DB
}

// Open opens (creating if needed) the cache for a project directory.
func Open(projectDir string) (*Cache, error) {
	dir := filepath.Join(projectDir, ".tether")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS expansions (
    key        TEXT PRIMARY KEY,
    output     TEXT NOT NULL,
    session    TEXT NOT NULL,
    created_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Cache{projectDir: projectDir, db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key computes the deterministic cache key for one source file: a hash
// of the source, the normalized project configuration, and the codegen
// version.
func Key(source, configData []byte) string {
	h := sha256.New()
	h.Write(source)
	h.Write([]byte{0})
	h.Write(configData)
	h.Write([]byte{0})
	h.Write([]byte(codegenVersion))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Lookup returns the cached output for a key, if present.
func (c *Cache) Lookup(key string) (string, bool) {
	var output string
	err := c.db.QueryRow(`SELECT output FROM expansions WHERE key = ?`, key).Scan(&output)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		return "", false
	}
	return output, true
}

// Store records an expansion result under its key, tagged with the
// session that produced it. An existing entry for the key is replaced.
func (c *Cache) Store(key, output string, session uuid.UUID) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO expansions (key, output, session, created_at) VALUES (?, ?, ?, ?)`,
		key, output, session.String(), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clean removes every cached expansion.
func (c *Cache) Clean() error {
	if _, err := c.db.Exec(`DELETE FROM expansions`); err != nil {
		return fmt.Errorf("cleaning cache: %w", err)
	}
	return nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM expansions`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ConfigFingerprint reads a project configuration file normalized for
// cache key computation: trailing whitespace is trimmed per line so
// cosmetic edits don't invalidate the cache. A missing config
// contributes an empty fingerprint.
func ConfigFingerprint(configPath string) ([]byte, error) {
	if configPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	var normalized strings.Builder
	for _, line := range lines {
		normalized.WriteString(strings.TrimRight(line, " \t\r"))
		normalized.WriteString("\n")
	}
	return []byte(strings.TrimRight(normalized.String(), "\n")), nil
}
