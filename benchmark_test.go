package gfwlist

import (
	"fmt"
	"strings"
	"testing"
)

func benchmarkListText(n int) string {
	var sb strings.Builder
	for i := range n {
		switch i % 4 {
		case 0:
			fmt.Fprintf(&sb, "||domain%d.example\n", i)
		case 1:
			fmt.Fprintf(&sb, ".suffix%d.example\n", i)
		case 2:
			fmt.Fprintf(&sb, "|http://anchored%d.example/path\n", i)
		case 3:
			fmt.Fprintf(&sb, "@@||allowed%d.example\n", i)
		}
	}
	sb.WriteString("/^https?:\\/\\/[^\\/]+blogspot\\.(.*)/\n")
	return sb.String()
}

func BenchmarkNew(b *testing.B) {
	text := benchmarkListText(4096)
	for b.Loop() {
		if _, err := New(text); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLookup(b *testing.B) {
	l := mustNew(b, benchmarkListText(4096))

	b.Run("Hit", func(b *testing.B) {
		for b.Loop() {
			res, err := l.Lookup("https://www.domain1024.example/index.html")
			if err != nil || res.Verdict != VerdictBlock {
				b.Fatalf("unexpected result: %+v, %v", res, err)
			}
		}
	})

	b.Run("Miss", func(b *testing.B) {
		for b.Loop() {
			res, err := l.Lookup("https://www.example.org/index.html")
			if err != nil || res.Verdict != VerdictNone {
				b.Fatalf("unexpected result: %+v, %v", res, err)
			}
		}
	})
}
