// Package commentblock recovers author/date/content structure from a block of
// comments pasted by hand from a news site.
package commentblock

import (
	"regexp"
	"strings"
	"unicode"

	"CommentsAnalyzer/internal/domain"
)

const (
	DefaultAuthor = "Anonymous"
	DefaultDate   = "no date"
)

var (
	replyMarkers  = []string{"reply to", "response to"}
	authorMarkers = []string{"comment by"}
	noiseTokens   = []string{"advertisement"}

	timeAgoExpr = regexp.MustCompile(`(?i)^(?:hace\b|ago\b|(?:just now|yesterday)\s*$|(?:\d+|an?|one|a few)\s+(?:second|sec|minute|min|hour|hr|day|week|month|year)s?\s+ago\b)`)
)

// LineKind is the role a single trimmed line plays in the block.
type LineKind int

const (
	LineNoise LineKind = iota
	LineReply
	LineAuthor
	LineDate
	LineContent
)

func (k LineKind) String() string {
	switch k {
	case LineNoise:
		return "noise"
	case LineReply:
		return "reply"
	case LineAuthor:
		return "author"
	case LineDate:
		return "date"
	case LineContent:
		return "content"
	default:
		return "unknown"
	}
}

// ClassifyLine decides what a trimmed line is. Checks run in priority order:
// reply marker, author marker, time-ago, noise, content.
func ClassifyLine(line string) LineKind {
	switch {
	case hasAnyPrefixFold(line, replyMarkers):
		return LineReply
	case hasAnyPrefixFold(line, authorMarkers):
		return LineAuthor
	case timeAgoExpr.MatchString(line):
		return LineDate
	case line == "" || isNoiseToken(line):
		return LineNoise
	default:
		return LineContent
	}
}

// Parse splits raw on line breaks and runs every trimmed line through the
// state machine. It never fails; input without content lines yields an empty slice.
func Parse(raw string) []domain.DraftComment {
	drafts := make([]domain.DraftComment, 0)
	state := NewState()

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		switch ClassifyLine(line) {
		case LineAuthor:
			state = state.WithAuthor(authorName(line))
		case LineDate:
			state = state.WithDate(line)
		case LineContent:
			var draft domain.DraftComment
			draft, state = state.Emit(line)
			drafts = append(drafts, draft)
		}
	}

	return drafts
}

func authorName(line string) string {
	rest := line
	for _, marker := range authorMarkers {
		if hasPrefixFold(line, marker) {
			rest = line[len(marker):]
			break
		}
	}
	rest = strings.TrimLeft(strings.TrimSpace(rest), ": ")
	return strings.TrimRightFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}

func isNoiseToken(line string) bool {
	for _, token := range noiseTokens {
		if strings.EqualFold(line, token) {
			return true
		}
	}
	return false
}

func hasAnyPrefixFold(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPrefixFold(line, p) {
			return true
		}
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
