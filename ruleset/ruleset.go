// Package ruleset loads named rule lists from files and keeps them up to date.
package ruleset

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/database64128/gfwlist-go"
	"github.com/database64128/gfwlist-go/mmap"
	"github.com/database64128/gfwlist-go/stats"
	"lukechampine.com/blake3"
)

const (
	// FormatText is the plain text rule list format.
	FormatText = "text"

	// FormatBase64 is the base64-encoded rule list format in which GFWList is distributed.
	FormatBase64 = "base64"
)

const autoProxyHeader = "[AutoProxy"

var errEmptyName = errors.New("empty rule list name")

// Config is the configuration for a rule list.
type Config struct {
	// Name is the name of the rule list. Must be unique.
	Name string `json:"name"`

	// Path is the path to the rule list file.
	Path string `json:"path"`

	// Format is the format of the rule list file.
	// Supported formats are "text" (default) and "base64".
	Format string `json:"format,omitzero"`
}

// Digest is the BLAKE3 digest of a rule list file.
type Digest [32]byte

// String returns the digest in hexadecimal.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements [encoding.TextMarshaler.MarshalText].
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Decode decodes the content of a rule list file in the given format into rule list text.
//
// An "[AutoProxy x.y.z]" header on the first line is turned into a comment,
// so that line numbers in build errors still match the decoded text.
func Decode(data []byte, format string) (string, error) {
	var b []byte

	switch format {
	case FormatText, "":
		b = bytes.Clone(data)
	case FormatBase64:
		b = make([]byte, base64.StdEncoding.DecodedLen(len(data)))
		n, err := base64.StdEncoding.Decode(b, data)
		if err != nil {
			return "", fmt.Errorf("failed to decode base64 rule list: %w", err)
		}
		b = b[:n]
	default:
		return "", fmt.Errorf("invalid rule list format: %q", format)
	}

	if bytes.HasPrefix(b, []byte(autoProxyHeader)) {
		b[0] = '!'
	}

	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// Load reads and compiles the rule list file.
func (c Config) Load() (*gfwlist.List, Digest, error) {
	data, err := mmap.ReadFile[[]byte](c.Path)
	if err != nil {
		return nil, Digest{}, fmt.Errorf("failed to read rule list %q: %w", c.Name, err)
	}
	defer mmap.Unmap(data)

	digest := Digest(blake3.Sum256(data))
	list, err := c.compile(data)
	return list, digest, err
}

func (c Config) compile(data []byte) (*gfwlist.List, error) {
	text, err := Decode(data, c.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule list %q: %w", c.Name, err)
	}

	list, err := gfwlist.New(text)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule list %q: %w", c.Name, err)
	}
	return list, nil
}

// Managed creates a managed rule list from the configuration and loads it.
func (c Config) Managed(collector stats.Collector) (*Managed, error) {
	if c.Name == "" {
		return nil, errEmptyName
	}

	list, digest, err := c.Load()
	if err != nil {
		return nil, err
	}

	m := Managed{
		config:    c,
		collector: collector,
	}
	m.state.Store(&state{
		list:     list,
		digest:   digest,
		loadedAt: time.Now(),
	})
	return &m, nil
}

type state struct {
	list     *gfwlist.List
	digest   Digest
	loadedAt time.Time
}

// Managed is a named rule list that can be reloaded from its file.
//
// Lookups always see a complete compiled list. Reloading swaps in a new list
// without blocking concurrent lookups.
type Managed struct {
	config    Config
	collector stats.Collector
	state     atomic.Pointer[state]
}

// Name returns the name of the rule list.
func (m *Managed) Name() string {
	return m.config.Name
}

// Config returns the configuration of the rule list.
func (m *Managed) Config() Config {
	return m.config
}

// List returns the current compiled list.
func (m *Managed) List() *gfwlist.List {
	return m.state.Load().list
}

// Lookup looks up the URL in the current list and collects the outcome.
func (m *Managed) Lookup(rawURL string) (gfwlist.Result, error) {
	res, err := m.state.Load().list.Lookup(rawURL)
	m.collector.CollectLookup(res, err)
	return res, err
}

// Collector returns the stats collector of the rule list.
func (m *Managed) Collector() stats.Collector {
	return m.collector
}

// Reload reloads the rule list from its file.
// The current list is kept if the file content is unchanged or fails to compile.
// It returns whether the list was replaced.
func (m *Managed) Reload() (bool, error) {
	data, err := mmap.ReadFile[[]byte](m.config.Path)
	if err != nil {
		return false, fmt.Errorf("failed to read rule list %q: %w", m.config.Name, err)
	}
	defer mmap.Unmap(data)

	digest := Digest(blake3.Sum256(data))
	if digest == m.state.Load().digest {
		return false, nil
	}

	list, err := m.config.compile(data)
	if err != nil {
		return false, err
	}

	m.state.Store(&state{
		list:     list,
		digest:   digest,
		loadedAt: time.Now(),
	})
	return true, nil
}

// Info contains information about a managed rule list.
type Info struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Format   string    `json:"format"`
	Rules    int       `json:"rules"`
	Digest   Digest    `json:"digest"`
	LoadedAt time.Time `json:"loadedAt"`
	gfwlist.Stats
}

// Info returns information about the current list.
func (m *Managed) Info() Info {
	s := m.state.Load()
	format := m.config.Format
	if format == "" {
		format = FormatText
	}
	return Info{
		Name:     m.config.Name,
		Path:     m.config.Path,
		Format:   format,
		Rules:    s.list.Len(),
		Digest:   s.digest,
		LoadedAt: s.loadedAt,
		Stats:    s.list.Stats(),
	}
}
