package jsoncfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Name    string   `json:"name"`
	Timeout Duration `json:"timeout"`
}

func TestSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := testConfig{Name: "gfwlist", Timeout: Duration(5 * time.Second)}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	const expectedJSON = "{\n    \"name\": \"gfwlist\",\n    \"timeout\": \"5s\"\n}\n"
	if string(b) != expectedJSON {
		t.Errorf("Saved %q, want %q", b, expectedJSON)
	}

	var got testConfig
	if err = Open(path, &got); err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Open() = %+v, want %+v", got, want)
	}
}

func TestOpenUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"name":"a","bogus":1}`), 0644); err != nil {
		t.Fatal(err)
	}
	var cfg testConfig
	if err := Open(path, &cfg); err == nil {
		t.Error("Open() should reject unknown fields")
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	if d.Value() != 90*time.Second {
		t.Errorf("Value() = %v, want %v", d.Value(), 90*time.Second)
	}
	if err := d.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) should fail")
	}
}
