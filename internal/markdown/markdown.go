// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package markdown parses the small markdown subset used in project descriptions.
//
// Lines are classified in a single forward pass. Recognized forms, in order of
// precedence: blank line, "## heading", a whole-line "**Label:**" subheading,
// "- item", "1. item", and paragraph. Inline "**bold**" and "__bold__" spans are
// resolved in paragraphs and list items. Anything else passes through as text.
package markdown

import (
	"regexp"
	"strings"
)

// Kind identifies the type of a block.
type Kind int

const (
	Heading Kind = iota + 1
	Subheading
	Paragraph
	UnorderedList
	OrderedList
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Subheading:
		return "subheading"
	case Paragraph:
		return "paragraph"
	case UnorderedList:
		return "unordered-list"
	case OrderedList:
		return "ordered-list"
	default:
		return "unknown"
	}
}

// Segment is a run of inline text.
type Segment struct {
	Text string
	Bold bool
}

// Block is one top-level node. Headings use Text, paragraphs use Segments and
// lists use Items.
type Block struct {
	Kind     Kind
	Text     string
	Segments []Segment
	Items    [][]Segment
}

// Document is the parsed content in input order.
type Document struct {
	Blocks []Block
}

var (
	subheadingRe   = regexp.MustCompile(`^\*\*[^*]+:\*\*$`)
	headingRe      = regexp.MustCompile(`^##\s*`)
	unorderedRe    = regexp.MustCompile(`^-\s+`)
	orderedRe      = regexp.MustCompile(`^\d+\.\s+`)
	boldDelimiters = []string{"**", "__"}
)

// parser accumulates list items until a line of another kind flushes them.
type parser struct {
	blocks   []Block
	listKind Kind
	items    [][]Segment
}

func (p *parser) flush() {
	if len(p.items) > 0 {
		p.blocks = append(p.blocks, Block{Kind: p.listKind, Items: p.items})
	}
	p.items = nil
	p.listKind = 0
}

func (p *parser) addItem(kind Kind, text string) {
	if p.listKind != kind {
		p.flush()
		p.listKind = kind
	}
	p.items = append(p.items, Inline(text))
}

func (p *parser) emit(b Block) {
	p.flush()
	p.blocks = append(p.blocks, b)
}

// Parse converts text into a Document.
func Parse(text string) Document {
	var p parser

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case strings.TrimSpace(line) == "":
			p.flush()
		case strings.HasPrefix(line, "##"):
			p.emit(Block{Kind: Heading, Text: strings.TrimSpace(headingRe.ReplaceAllString(line, ""))})
		case subheadingRe.MatchString(line):
			p.emit(Block{Kind: Subheading, Text: strings.TrimSuffix(strings.TrimPrefix(line, "**"), "**")})
		case unorderedRe.MatchString(line):
			p.addItem(UnorderedList, unorderedRe.ReplaceAllString(line, ""))
		case orderedRe.MatchString(line):
			p.addItem(OrderedList, orderedRe.ReplaceAllString(line, ""))
		default:
			p.emit(Block{Kind: Paragraph, Segments: Inline(line)})
		}
	}
	p.flush()

	return Document{Blocks: p.blocks}
}

// Inline splits text into plain and bold segments, scanning for matching
// delimiter pairs left to right. Unmatched delimiters stay literal and empty
// bold spans are dropped.
func Inline(text string) []Segment {
	var segments []Segment
	plainStart := 0

	for i := 0; i < len(text); {
		delim, end := matchBold(text, i)
		if end < 0 {
			i++
			continue
		}

		if i > plainStart {
			segments = append(segments, Segment{Text: text[plainStart:i]})
		}
		if inner := text[i+len(delim) : end]; inner != "" {
			segments = append(segments, Segment{Text: inner, Bold: true})
		}
		i = end + len(delim)
		plainStart = i
	}

	if plainStart < len(text) {
		segments = append(segments, Segment{Text: text[plainStart:]})
	}
	if len(segments) == 0 {
		return []Segment{{Text: text}}
	}
	return segments
}

// matchBold reports the delimiter opening at i and the index of its closing
// counterpart, or -1 when no span starts at i.
func matchBold(text string, i int) (string, int) {
	for _, delim := range boldDelimiters {
		if !strings.HasPrefix(text[i:], delim) {
			continue
		}
		if j := strings.Index(text[i+len(delim):], delim); j >= 0 {
			return delim, i + len(delim) + j
		}
	}
	return "", -1
}
