package bytestrings

import (
	"iter"
	"strings"
	"unsafe"
)

// NextNonEmptyLine returns the next non-empty line and the remaining text.
func NextNonEmptyLine[T ~[]byte | ~string](text T) (T, T) {
	for {
		lfIndex := strings.IndexByte(*(*string)(unsafe.Pointer(&text)), '\n')
		if lfIndex == -1 {
			return trimCR(text), text[len(text):]
		}
		line := trimCR(text[:lfIndex])
		text = text[lfIndex+1:]
		if len(line) == 0 {
			continue
		}
		return line, text
	}
}

// NonEmptyLines returns an iterator over non-empty lines in text.
func NonEmptyLines[T ~[]byte | ~string](text T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			var line T
			line, text = NextNonEmptyLine(text)
			if len(line) == 0 {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Lines returns an iterator over non-empty lines in text and their 1-based line numbers.
// A trailing '\r' is removed from each line.
func Lines[T ~[]byte | ~string](text T) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		var lineNumber int
		for len(text) > 0 {
			lineNumber++
			var line T
			lfIndex := strings.IndexByte(*(*string)(unsafe.Pointer(&text)), '\n')
			if lfIndex == -1 {
				line, text = text, text[len(text):]
			} else {
				line, text = text[:lfIndex], text[lfIndex+1:]
			}
			line = trimCR(line)
			if len(line) == 0 {
				continue
			}
			if !yield(lineNumber, line) {
				return
			}
		}
	}
}

func trimCR[T ~[]byte | ~string](line T) T {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}
	return line
}
