package agent

import (
	"fmt"
	"strings"

	"party-planner/backend/internal/state"
)

const planningGuide = `== Event planning guide ==

Recommendations by event type:
- Birthday: cake, candles, birthday song, gift exchange, games
- Anniversary: romantic mood, flowers, keepsakes, photos
- Corporate: team building, networking, buffet, awards
- Graduation: keepsakes, photo booth, congratulation messages

Venue by guest count:
- Up to 10: cafe, home, small restaurant
- 10-30: party room, private restaurant room
- 30-50: hotel banquet hall, community center
- Over 50: large banquet hall, outdoor space

Budget bands:
- Under 100,000 KRW: simple party at home
- 100,000-500,000 KRW: cafe or restaurant party
- 500,000-1,000,000 KRW: hotel or party room
- Over 1,000,000 KRW: full-service party`

type toolSection struct {
	title  string
	result string
}

// knowledgeContext joins tool results, the static guide and any reference snippets.
// A nil sections slice yields the guide-only fallback.
func knowledgeContext(sections []toolSection, snippets []state.KnowledgeSnippet) string {
	var b strings.Builder
	if len(sections) > 0 {
		b.WriteString("== Live tool results ==\n")
		for _, s := range sections {
			fmt.Fprintf(&b, "\n%s:\n%s\n", s.title, s.result)
		}
		b.WriteString("\n")
	}
	b.WriteString(planningGuide)
	if len(snippets) > 0 {
		b.WriteString("\n\n== Reference notes ==\n")
		for _, s := range snippets {
			fmt.Fprintf(&b, "\n[%s] %s\n", s.Title, strings.TrimSpace(s.Content))
		}
	}
	return b.String()
}
