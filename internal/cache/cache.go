// Package cache stores check results on disk so that unchanged files are
// not re-checked. Entries are msgpack files named after an xxhash key of
// everything that can change a result.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

// schemaVersion is bumped whenever Entry changes shape.
const schemaVersion uint16 = 1

// Key identifies one (content, tool version, rule set, suppressions) tuple.
type Key uint64

func (k Key) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}

// KeyFor hashes file content together with the tool version, the rule
// fingerprint and the excluded codes.
func KeyFor(content []byte, version, rules string, excluded []string) Key {
	h := xxhash.New()
	_, _ = h.WriteString(strconv.Itoa(int(schemaVersion)))
	_, _ = h.WriteString("\x00" + version + "\x00" + rules + "\x00")
	sorted := append([]string(nil), excluded...)
	sort.Strings(sorted)
	for _, e := range sorted {
		_, _ = h.WriteString(e + "\x00")
	}
	_, _ = h.Write(content)
	return Key(h.Sum64())
}

// Record is the stored form of a diagnostic.
type Record struct {
	Severity uint8
	Rule     string
	Code     string
	Message  string
	Position int
	Line     int
	Col      int
	Start    uint32
	End      uint32
	Fixable  bool
}

// Entry is one cached check result.
type Entry struct {
	Schema      uint16
	Path        string
	Diagnostics []Record
	Truncated   bool
}

// NewEntry captures diags for path.
func NewEntry(path string, diags []diag.Diagnostic, truncated bool) *Entry {
	e := &Entry{Schema: schemaVersion, Path: path, Truncated: truncated}
	e.Diagnostics = make([]Record, len(diags))
	for i, d := range diags {
		e.Diagnostics[i] = Record{
			Severity: uint8(d.Severity),
			Rule:     d.Rule,
			Code:     d.Code,
			Message:  d.Message,
			Position: d.Position,
			Line:     d.Line,
			Col:      d.Col,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Fixable:  d.Fixable,
		}
	}
	return e
}

// Restore rebuilds diagnostics, pointing their spans at file.
func (e *Entry) Restore(file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(e.Diagnostics))
	for i, r := range e.Diagnostics {
		out[i] = diag.Diagnostic{
			Severity: diag.Severity(r.Severity),
			Rule:     r.Rule,
			Code:     r.Code,
			Message:  r.Message,
			Position: r.Position,
			Primary:  source.Span{File: file, Start: r.Start, End: r.End},
			Line:     r.Line,
			Col:      r.Col,
			Fixable:  r.Fixable,
		}
	}
	return out
}

// Cache is a directory of entries. It is safe for concurrent use; a nil
// *Cache is a valid, always-empty cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open uses dir, or $XDG_CACHE_HOME/phpsniff (~/.cache/phpsniff) when dir
// is empty.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "phpsniff")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	s := key.String()
	return filepath.Join(c.dir, s[:2], s+".mp")
}

// Put writes e atomically: encode into a temp file, then rename.
func (c *Cache) Put(key Key, e *Entry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(e); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. A missing entry or one written by another
// schema is a miss, not an error.
func (c *Cache) Get(key Key) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if e.Schema != schemaVersion {
		return nil, false, nil
	}
	return &e, true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
