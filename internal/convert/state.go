package convert

import (
	"strings"

	"git.home.luguber.info/inful/vault2hugo/internal/frontmatter"
	"git.home.luguber.info/inful/vault2hugo/internal/obsidian"
)

// State is the position of the line reader within a document.
type State int

const (
	StateAwaitingHeaderOpen State = iota
	StateInHeader
	StateInBody
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAwaitingHeaderOpen:
		return "awaiting_header_open"
	case StateInHeader:
		return "in_header"
	case StateInBody:
		return "in_body"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// SkipReason explains why a document produced no output.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipNoHeader      SkipReason = "no_header"
	SkipMissingStatus SkipReason = "missing_status"
	SkipEmptyBody     SkipReason = "empty_body"
)

// LineRewriter rewrites the link syntax of one body line.
type LineRewriter interface {
	RewriteLine(line string, candidates []string) (string, []obsidian.Resolution, error)
}

// machine holds the per-document conversion state.
type machine struct {
	state       State
	inCodeBlock bool
	fence       string
	skip        SkipReason

	fields *frontmatter.Fields
	body   []string
	tags   []string
	assets []obsidian.Resolution

	links      LineRewriter
	candidates []string
}

func newMachine(fence string, links LineRewriter, candidates []string) *machine {
	return &machine{
		state:      StateAwaitingHeaderOpen,
		fence:      fence,
		fields:     frontmatter.NewFields(),
		links:      links,
		candidates: candidates,
	}
}

// feed advances the machine by one line (without its line terminator).
func (m *machine) feed(line string) error {
	switch m.state {
	case StateAwaitingHeaderOpen:
		if !frontmatter.IsMarker(line) {
			m.stop(SkipNoHeader)
			return nil
		}
		m.state = StateInHeader
		return nil

	case StateInHeader:
		if !frontmatter.IsMarker(line) {
			return frontmatter.DecodeLine(line, m.fields)
		}
		if !frontmatter.HasRequired(m.fields) {
			m.stop(SkipMissingStatus)
			return nil
		}
		m.state = StateInBody
		return nil

	case StateInBody:
		return m.feedBody(line)
	}
	return nil
}

func (m *machine) feedBody(line string) error {
	if strings.Contains(line, m.fence) {
		m.inCodeBlock = !m.inCodeBlock
		m.body = append(m.body, line)
		return nil
	}
	if m.inCodeBlock {
		m.body = append(m.body, line)
		return nil
	}

	tags, cleaned := obsidian.ExtractTags(line)
	m.tags = append(m.tags, tags...)

	rewritten, resolved, err := m.links.RewriteLine(cleaned, m.candidates)
	if err != nil {
		return err
	}
	m.assets = append(m.assets, resolved...)
	m.body = append(m.body, rewritten)
	return nil
}

// end is called once input is exhausted.
func (m *machine) end() {
	if m.state == StateDone {
		return
	}
	if len(m.body) == 0 {
		m.stop(SkipEmptyBody)
		return
	}
	m.state = StateDone
}

func (m *machine) stop(reason SkipReason) {
	m.skip = reason
	m.state = StateDone
}

func (m *machine) done() bool {
	return m.state == StateDone
}
