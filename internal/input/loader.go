// Package input loads passages and prompt files from disk. Passages may be
// plain text, Markdown, or HTML; HTML is reduced to its visible text before
// analysis.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// LoadPassage reads one passage from a file. The extension picks the
// loader: .txt and .md are read as-is, .html and .htm are parsed and
// reduced to visible text. Anything else is rejected.
func LoadPassage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return strings.TrimSpace(string(data)), nil
	case ".html", ".htm":
		text, err := VisibleText(string(data))
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", path, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported passage format %q (want .txt, .md, .html)", filepath.Ext(path))
	}
}

// LoadPair loads the baseline and current passages for a comparison.
func LoadPair(baselinePath, currentPath string) (baseline, current string, err error) {
	baseline, err = LoadPassage(baselinePath)
	if err != nil {
		return "", "", err
	}
	current, err = LoadPassage(currentPath)
	if err != nil {
		return "", "", err
	}
	return baseline, current, nil
}

// VisibleText reduces an HTML document to its visible text, skipping
// script, style, noscript, and iframe subtrees.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

// LoadPrompt reads a named prompt (.txt) from a prompt directory, stripped
// of surrounding whitespace. Prompts are natural-language instructions, not
// structured data.
func LoadPrompt(dir, name string) (string, error) {
	path := filepath.Join(dir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ListPrompts returns the sorted stems of all .txt files in a prompt
// directory. A missing directory yields an empty list.
func ListPrompts(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			names = append(names, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		}
	}
	sort.Strings(names)
	return names
}
