// Package format names the output formats docmark can render to and
// detects them from file names.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents a supported output format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HTML renders through the htmldoc package.
	HTML
	// Text renders plain text with aligned tables.
	Text
	// ANSI renders text styled with terminal escape sequences.
	ANSI
	// Source prints canonical docmark markup.
	Source
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HTML:
		return "HTML"
	case Text:
		return "Text"
	case ANSI:
		return "ANSI"
	case Source:
		return "Source"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HTML:
		return ".html"
	case Text, ANSI:
		return ".txt"
	case Source:
		return ".dm"
	default:
		return ""
	}
}

// Names lists the accepted format names, as used by Parse.
func Names() []string {
	return []string{"html", "text", "ansi", "source"}
}

// Parse returns the format with the given name, ignoring case.
func Parse(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html":
		return HTML, nil
	case "text", "txt", "plain":
		return Text, nil
	case "ansi", "term", "terminal":
		return ANSI, nil
	case "source", "dm", "docmark":
		return Source, nil
	}
	return Unknown, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Detect determines the output format from a filename extension. ANSI is
// never detected; escape sequences only make sense on a terminal.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".html", ".htm":
		return HTML
	case ".txt", ".text":
		return Text
	case ".dm", ".docmark":
		return Source
	default:
		return Unknown
	}
}

// DetectFromMagic inspects the start of an input. It returns HTML for
// content that is already HTML, Source for content that starts like
// docmark markup and Unknown otherwise.
func DetectFromMagic(data []byte) Format {
	trimmed := strings.TrimLeft(string(data[:min(len(data), 512)]), " \t\r\n")
	if trimmed == "" {
		return Unknown
	}

	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return HTML
	}

	if strings.HasPrefix(trimmed, "//") {
		return Source
	}
	if len(trimmed) >= 2 && strings.ContainsRune("pit", rune(trimmed[0])) &&
		strings.ContainsRune(" \t\r\n", rune(trimmed[1])) {
		return Source
	}

	return Unknown
}
