package obsidian

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/vault2hugo/internal/assets"
	"git.home.luguber.info/inful/vault2hugo/internal/errors"
	"git.home.luguber.info/inful/vault2hugo/internal/logfields"
)

// linkPattern recognizes [[target]], [[target|alias]], [[target#header]],
// [[target#header^block]] and [[target#^block]].
var linkPattern = regexp.MustCompile(`\[\[([^\]#|]+)(?:#([^\^\]|]+))?(?:#?\^\^?([^\]]+))?(?:\|([^\]]+))?\]\]`)

// LinkMatch is one parsed occurrence of the wikilink syntax.
type LinkMatch struct {
	Target    string
	Header    string
	Block     string
	Alias     string
	HasHeader bool
	HasBlock  bool
	HasAlias  bool
}

// Render formats the match as a Markdown link pointing at dest.
func (m LinkMatch) Render(dest string) string {
	switch {
	case m.HasAlias:
		return "[" + m.Alias + "](" + dest + ")"
	case m.HasBlock:
		return "[" + dest + "#^" + m.Header + "](" + dest + "#^" + m.Block + ")"
	case m.HasHeader:
		return "[" + dest + "#" + m.Header + "](" + dest + "#" + m.Header + ")"
	default:
		return "[image](" + dest + ")"
	}
}

// ParseLinks returns every wikilink match in line with its byte offsets.
func ParseLinks(line string) ([]LinkMatch, [][]int) {
	locs := linkPattern.FindAllStringSubmatchIndex(line, -1)
	matches := make([]LinkMatch, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, matchFromIndex(line, loc))
	}
	return matches, locs
}

func matchFromIndex(line string, loc []int) LinkMatch {
	group := func(n int) (string, bool) {
		start, end := loc[2*n], loc[2*n+1]
		if start < 0 {
			return "", false
		}
		return line[start:end], true
	}
	var m LinkMatch
	m.Target, _ = group(1)
	m.Header, m.HasHeader = group(2)
	m.Block, m.HasBlock = group(3)
	m.Alias, m.HasAlias = group(4)
	return m
}

// Materializer ensures a resolved resource exists at its destination.
type Materializer interface {
	Materialize(src, dst string) (assets.Outcome, error)
}

// Resolution records one resource a link was resolved against.
type Resolution struct {
	Source      string
	Destination string
	Outcome     assets.Outcome
}

// LinkResolver rewrites wikilinks and materializes the resources they point to.
type LinkResolver struct {
	imagesRoot string
	linkPrefix string
	assets     Materializer
	logger     *slog.Logger
}

// NewLinkResolver returns a resolver copying resources under imagesRoot.
// When linkPrefix is non-empty, rewritten links use it in place of
// imagesRoot.
func NewLinkResolver(imagesRoot, linkPrefix string, m Materializer, logger *slog.Logger) *LinkResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkResolver{
		imagesRoot: strings.TrimRight(imagesRoot, "/"),
		linkPrefix: strings.TrimRight(linkPrefix, "/"),
		assets:     m,
		logger:     logger,
	}
}

// RewriteLine rewrites every wikilink in line. A link whose target is a
// suffix of a candidate path points to the copy of that candidate under the
// images root; unresolved targets are kept as written.
//
// Every candidate must be an absolute path.
func (r *LinkResolver) RewriteLine(line string, candidates []string) (string, []Resolution, error) {
	matches, locs := ParseLinks(line)
	if len(matches) == 0 {
		return line, nil, nil
	}

	var sb strings.Builder
	var resolved []Resolution
	last := 0
	for i, m := range matches {
		dest, res, err := r.resolve(m.Target, candidates)
		if err != nil {
			return "", nil, err
		}
		resolved = append(resolved, res...)

		sb.WriteString(line[last:locs[i][0]])
		sb.WriteString(m.Render(dest))
		last = locs[i][1]
	}
	sb.WriteString(line[last:])
	return sb.String(), resolved, nil
}

// resolve walks every candidate. A match rewrites target before the next
// candidate is compared, so later candidates are matched against the
// rewritten path.
func (r *LinkResolver) resolve(target string, candidates []string) (string, []Resolution, error) {
	var resolved []Resolution
	link := target
	for _, c := range candidates {
		if !filepath.IsAbs(c) {
			return "", nil, errors.ConfigurationError("resource candidate is not an absolute path").
				WithContext("path", c).
				Build()
		}
		if !strings.HasSuffix(c, target) {
			continue
		}

		rel := target
		target = r.imagesRoot + "/" + rel
		link = target
		if r.linkPrefix != "" {
			link = r.linkPrefix + "/" + rel
		}

		outcome, err := r.assets.Materialize(c, target)
		if err != nil {
			return "", nil, err
		}
		r.logger.Debug("Resolved link target", logfields.Target(rel), logfields.Path(c), logfields.Outcome(string(outcome)))
		resolved = append(resolved, Resolution{Source: c, Destination: target, Outcome: outcome})
	}
	return link, resolved, nil
}
