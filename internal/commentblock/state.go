package commentblock

import "CommentsAnalyzer/internal/domain"

// Phase tracks which attribution markers have been seen since the last emitted comment.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAuthorSet
	PhaseDateSet
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAuthorSet:
		return "author-set"
	case PhaseDateSet:
		return "date-set"
	default:
		return "unknown"
	}
}

// State is the attribution carried from marker lines to the next content line.
// Transitions return a new value; State is never mutated in place.
type State struct {
	Phase  Phase
	Author string
	Date   string
}

// NewState returns the idle state with default attribution.
func NewState() State {
	return State{Phase: PhaseIdle, Author: DefaultAuthor, Date: DefaultDate}
}

// WithAuthor records an author. An empty name keeps the current author.
func (s State) WithAuthor(name string) State {
	if name != "" {
		s.Author = name
	}
	s.Phase = PhaseAuthorSet
	return s
}

// WithDate records a free-text date.
func (s State) WithDate(date string) State {
	if date != "" {
		s.Date = date
	}
	s.Phase = PhaseDateSet
	return s
}

// Emit attaches the carried attribution to content and resets to idle, so
// attribution applies to exactly one content line.
func (s State) Emit(content string) (domain.DraftComment, State) {
	return domain.DraftComment{
		Author:  s.Author,
		Date:    s.Date,
		Content: content,
	}, NewState()
}
