package rag

import (
	"strings"
	"unicode/utf8"
)

// defaultSeparators is the boundary preference order: paragraph break,
// line break, sentence end, word break, then hard cut.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter cuts text into overlapping chunks, preferring natural
// boundaries over hard cuts.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	separators   []string
}

// NewSplitter returns a splitter with the given chunk size and overlap
// (in characters).
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split cuts text into chunks of at most ChunkSize characters with
// ChunkOverlap characters carried between consecutive chunks.
func (s *Splitter) Split(text string) []string {
	raw := s.split(text, s.separators)

	chunks := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func (s *Splitter) split(text string, separators []string) []string {
	// Pick the first separator present in the text; the empty separator
	// always matches and forces a hard cut.
	sep := separators[len(separators)-1]
	var rest []string
	for i, candidate := range separators {
		if candidate == "" {
			sep = ""
			rest = nil
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return s.hardCut(text)
	}

	var final []string
	var good []string
	for _, part := range strings.Split(text, sep) {
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) < s.ChunkSize {
			good = append(good, part)
			continue
		}
		// Oversized fragment: flush what we have, then recurse with the
		// finer separators.
		if len(good) > 0 {
			final = append(final, s.merge(good, sep)...)
			good = nil
		}
		final = append(final, s.split(part, rest)...)
	}
	if len(good) > 0 {
		final = append(final, s.merge(good, sep)...)
	}
	return final
}

// merge greedily joins fragments into chunks up to ChunkSize, carrying
// ChunkOverlap characters of trailing fragments into the next chunk.
func (s *Splitter) merge(parts []string, sep string) []string {
	sepLen := utf8.RuneCountInString(sep)

	var chunks []string
	var window []string
	total := 0

	joinedLen := func(extra int) int {
		n := total + extra
		if len(window) > 0 {
			n += sepLen
		}
		return n
	}

	for _, p := range parts {
		pl := utf8.RuneCountInString(p)

		if len(window) > 0 && joinedLen(pl) > s.ChunkSize {
			chunks = append(chunks, strings.Join(window, sep))
			// Shrink the window down to the configured overlap.
			for len(window) > 0 && (total > s.ChunkOverlap || joinedLen(pl) > s.ChunkSize) {
				head := utf8.RuneCountInString(window[0])
				total -= head
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
			}
		}

		if len(window) > 0 {
			total += sepLen
		}
		window = append(window, p)
		total += pl
	}

	if len(window) > 0 {
		chunks = append(chunks, strings.Join(window, sep))
	}
	return chunks
}

// hardCut slices text into ChunkSize windows advancing by
// ChunkSize-ChunkOverlap characters.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	stride := s.ChunkSize - s.ChunkOverlap
	if stride <= 0 {
		stride = s.ChunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += stride {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
