// Package jsoncfg loads and saves JSON configuration files.
package jsoncfg

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/database64128/gfwlist-go/mmap"
)

// Open decodes the JSON file at path into v.
// Unknown fields are rejected.
func Open(path string, v any) error {
	data, err := mmap.ReadFile[[]byte](path)
	if err != nil {
		return err
	}
	defer mmap.Unmap(data)

	d := json.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	return d.Decode(v)
}

// Save encodes v as indented JSON and writes it to path.
func Save(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0644)
}

// Duration is [time.Duration] but implements [encoding.TextMarshaler] and [encoding.TextUnmarshaler].
type Duration time.Duration

// Value returns the duration as [time.Duration].
func (d Duration) Value() time.Duration {
	return time.Duration(d)
}

// MarshalText implements [encoding.TextMarshaler.MarshalText].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler.UnmarshalText].
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}
