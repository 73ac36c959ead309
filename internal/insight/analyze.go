// Package insight turns completed interview transcripts into a leadership
// summary using keyword matching with deterministic fallback content.
package insight

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmptyInput is returned by Analyze when no transcripts are supplied.
var ErrEmptyInput = errors.New("no interviews provided")

// Transcript is one interview's flattened text.
type Transcript struct {
	Name string `json:"name"`
	Text string `json:"transcript"`
}

// Report is the aggregated outcome of an analysis.
type Report struct {
	Themes          []string `json:"themes"`
	Blockers        []string `json:"blockers"`
	Achievements    []string `json:"achievements"`
	Recommendations []string `json:"recommendations"`
	FullReport      string   `json:"fullReport"`
}

// Analyze scans the transcripts for the trigger substrings of the rule table.
// No category of the result is ever empty.
func Analyze(transcripts []Transcript) (Report, error) {
	if len(transcripts) == 0 {
		return Report{}, ErrEmptyInput
	}

	var sb strings.Builder
	for _, t := range transcripts {
		sb.WriteString(strings.ToLower(t.Text))
		sb.WriteString("\n")
	}
	buf := sb.String()

	found := map[Category][]string{}
	for _, r := range rules {
		if !strings.Contains(buf, r.trigger) {
			continue
		}
		found[r.category] = appendUnique(found[r.category], r.insight)
	}

	rep := Report{
		Themes:          fill(CategoryThemes, found[CategoryThemes]),
		Blockers:        fill(CategoryBlockers, found[CategoryBlockers]),
		Achievements:    fill(CategoryAchievements, found[CategoryAchievements]),
		Recommendations: Cap(CategoryRecommendations, clone(recommendations)),
	}
	rep.FullReport = Narrative(rep.Themes, rep.Blockers, rep.Achievements)
	return rep, nil
}

// Cap truncates items to the limit of category c, keeping their order.
func Cap(c Category, items []string) []string {
	if limit, ok := Caps[c]; ok && len(items) > limit {
		return items[:limit]
	}
	return items
}

// Defaults returns a copy of the filler entries used when c has no matches.
func Defaults(c Category) []string {
	if c == CategoryRecommendations {
		return clone(recommendations)
	}
	return clone(defaults[c])
}

// Narrative renders the three-paragraph leadership summary from the leading
// entries of each category.
func Narrative(themes, blockers, achievements []string) string {
	if len(themes) == 0 {
		themes = defaults[CategoryThemes]
	}
	if len(blockers) == 0 {
		blockers = defaults[CategoryBlockers]
	}
	if len(achievements) == 0 {
		achievements = defaults[CategoryAchievements]
	}

	return fmt.Sprintf(narrativeTemplate, phrase(themes), phrase(achievements), phrase(blockers))
}

const narrativeTemplate = `Based on the team interviews conducted, the team is actively engaged in multiple strategic initiatives with a strong commitment to delivery. The most prominent themes were %s, which reflect where the team is investing most of its attention and energy this period.

The team has achieved meaningful results, most notably %s. These wins show steady momentum and point to ways of working that are succeeding and are worth reinforcing across the wider organization.

Primary challenges center on %s. Addressing these through better visibility into project status, clearer resource allocation and stronger cross-functional coordination will let the team sustain its progress and increase its impact over the coming period.`

// phrase joins the first one or two entries into running text.
func phrase(items []string) string {
	if len(items) == 1 {
		return lowerFirst(items[0])
	}
	return lowerFirst(items[0]) + " and " + lowerFirst(items[1])
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func fill(c Category, items []string) []string {
	if len(items) == 0 {
		return Defaults(c)
	}
	return Cap(c, items)
}

func appendUnique(items []string, s string) []string {
	for _, it := range items {
		if it == s {
			return items
		}
	}
	return append(items, s)
}

func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
