package insight

import "strings"

const maxHighlights = 5

var keyPointWords = []string{
	"completed", "finished", "achieved", "delivered", "launched",
	"blocked", "challenge", "issue", "problem",
	"planning", "upcoming", "next",
}

var actionWords = []string{"will", "need to"}

// KeyPoints returns up to five transcript paragraphs mentioning progress,
// blockers or plans.
func KeyPoints(transcript string) []string {
	return highlight(transcript, keyPointWords)
}

// ActionItems returns up to five transcript paragraphs that read like a
// commitment ("will", "need to").
func ActionItems(transcript string) []string {
	return highlight(transcript, actionWords)
}

func highlight(transcript string, words []string) []string {
	var out []string
	for _, para := range strings.Split(transcript, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		lower := strings.ToLower(para)
		for _, w := range words {
			if strings.Contains(lower, w) {
				out = append(out, para)
				break
			}
		}
		if len(out) == maxHighlights {
			break
		}
	}
	return out
}
