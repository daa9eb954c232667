package checker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/lukemcguire/linkcheck/urlutil"
)

// maxLineBytes is the longest document line the extractor accepts.
const maxLineBytes = 1024 * 1024

// linkPattern matches inline markdown links: a non-empty label in square
// brackets immediately followed by a parenthesized target.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// LinkReference is one occurrence of a link in the scanned document.
type LinkReference struct {
	Text       string // The markdown link label
	URL        string // Absolute URL after normalization
	LineNumber int    // 1-based line of the occurrence
}

// ExtractLinks scans markdown text line by line and returns every checkable
// link in document order. Anchors and relative paths are skipped,
// protocol-relative targets are rewritten to https, and duplicates are kept.
func ExtractLinks(doc io.Reader) ([]LinkReference, error) {
	scanner := bufio.NewScanner(doc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var links []LinkReference
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		for _, match := range linkPattern.FindAllStringSubmatch(scanner.Text(), -1) {
			target, ok := urlutil.NormalizeTarget(match[2])
			if !ok {
				continue
			}
			links = append(links, LinkReference{
				Text:       match[1],
				URL:        target,
				LineNumber: lineNumber,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return links, fmt.Errorf("scan document at line %d: %w", lineNumber+1, err)
	}
	return links, nil
}

// ExtractFile reads the document at path and extracts its links.
// A missing document yields an error wrapping fs.ErrNotExist.
func ExtractFile(path string) ([]LinkReference, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = file.Close() }()

	links, err := ExtractLinks(file)
	if err != nil {
		return links, fmt.Errorf("extract links from %s: %w", path, err)
	}
	return links, nil
}
