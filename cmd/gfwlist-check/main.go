// GFWList checker compiles a rule list in plaintext or base64 format,
// and looks up URLs from the command line or standard input.
//
// For each URL, it prints one line: "BLOCK <rule>", "ALLOW" or "NONE".

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/database64128/gfwlist-go"
	"github.com/database64128/gfwlist-go/mmap"
	"github.com/database64128/gfwlist-go/ruleset"
)

var (
	inText   = flag.String("inText", "", "Path to input rule list file in plaintext format.")
	inBase64 = flag.String("inBase64", "", "Path to input rule list file in base64 format.")
	outText  = flag.String("outText", "", "Path to output decoded rule list file in plaintext format.")
)

func main() {
	flag.Parse()

	var (
		inCount  int
		inPath   string
		inFormat string
	)

	if *inText != "" {
		inCount++
		inPath = *inText
		inFormat = ruleset.FormatText
	}

	if *inBase64 != "" {
		inCount++
		inPath = *inBase64
		inFormat = ruleset.FormatBase64
	}

	if inCount != 1 {
		fmt.Fprintln(os.Stderr, "Exactly one of -inText, -inBase64 must be specified.")
		flag.Usage()
		os.Exit(1)
	}

	data, err := mmap.ReadFile[[]byte](inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read input file:", err)
		os.Exit(1)
	}

	text, err := ruleset.Decode(data, inFormat)
	mmap.Unmap(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to decode input file:", err)
		os.Exit(1)
	}

	if *outText != "" {
		if err = os.WriteFile(*outText, []byte(text), 0644); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to write output file:", err)
			os.Exit(1)
		}
	}

	list, err := gfwlist.New(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to build rule list:", err)
		os.Exit(1)
	}

	var (
		urls    iter.Seq[string]
		scanErr error
	)
	if args := flag.Args(); len(args) > 0 {
		urls = func(yield func(string) bool) {
			for _, arg := range args {
				if !yield(arg) {
					return
				}
			}
		}
	} else if *outText != "" {
		return
	} else {
		urls = scanLines(os.Stdin, &scanErr)
	}

	w := bufio.NewWriter(os.Stdout)
	ok := check(list, urls, w, os.Stderr)
	if err = w.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to write output:", err)
		os.Exit(1)
	}
	if scanErr != nil {
		fmt.Fprintln(os.Stderr, "Failed to read URLs:", scanErr)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

// scanLines returns an iterator over the non-empty lines of r, with surrounding whitespace trimmed.
// When iteration ends, the read error, if any, is stored in errp.
func scanLines(r io.Reader, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := bufio.NewScanner(r)
		for s.Scan() {
			line := strings.TrimSpace(s.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
		*errp = s.Err()
	}
}

// check looks up each URL in the list and writes the verdicts to w.
// URL errors are written to errw. It returns false if any lookup failed.
func check(list *gfwlist.List, urls iter.Seq[string], w, errw io.Writer) bool {
	ok := true

	for rawURL := range urls {
		res, err := list.Lookup(rawURL)
		if err != nil {
			fmt.Fprintln(errw, err)
			ok = false
			continue
		}

		switch res.Verdict {
		case gfwlist.VerdictBlock:
			fmt.Fprintln(w, "BLOCK", res.Rule)
		case gfwlist.VerdictAllow:
			fmt.Fprintln(w, "ALLOW")
		default:
			fmt.Fprintln(w, "NONE")
		}
	}

	return ok
}
