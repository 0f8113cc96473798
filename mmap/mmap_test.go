package mmap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "gfwlist.txt")
	const content = "||example.com\n@@||allowed.example.com\n"
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile[string](name)
	if err != nil {
		t.Fatal(err)
	}
	if data != content {
		t.Errorf("Expected file content %q, got %q", content, data)
	}
	if err = Unmap(data); err != nil {
		t.Fatal(err)
	}

	b, err := ReadFile[[]byte](name)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != content {
		t.Errorf("Expected file content %q, got %q", content, b)
	}
	if err = Unmap(b); err != nil {
		t.Fatal(err)
	}
}

func TestReadEmptyFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(name, nil, 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFile[string](name)
	if err != nil {
		t.Fatal(err)
	}
	if data != "" {
		t.Errorf("Expected empty data, got %q", data)
	}
	if err = Unmap(data); err != nil {
		t.Fatal(err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := ReadFile[string](filepath.Join(t.TempDir(), "missing.txt")); !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
