package discord

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"party-planner/backend/internal/state"
)

var (
	codeBlockPattern        = regexp.MustCompile("(?s)```.*?```")
	headerPattern           = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.+)$`)
	unorderedListPattern    = regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]+(.+)$`)
	multipleNewlinesPattern = regexp.MustCompile(`\n{3,}`)
)

// FormatMarkdown converts model-written markdown to what Discord renders.
// Headers become bold, dash lists become bullets and code blocks are left alone.
func FormatMarkdown(content string) string {
	var blocks []string
	content = codeBlockPattern.ReplaceAllStringFunc(content, func(match string) string {
		blocks = append(blocks, match)
		return fmt.Sprintf("\x00%d\x00", len(blocks)-1)
	})

	content = headerPattern.ReplaceAllString(content, "**$1**")
	content = unorderedListPattern.ReplaceAllString(content, "• $1")
	content = multipleNewlinesPattern.ReplaceAllString(content, "\n\n")

	for i, block := range blocks {
		content = strings.Replace(content, fmt.Sprintf("\x00%d\x00", i), block, 1)
	}
	return strings.TrimSpace(content)
}

// FormatBold formats text as bold in Discord
func FormatBold(text string) string {
	return "**" + text + "**"
}

// FormatItalic formats text as italic in Discord
func FormatItalic(text string) string {
	return "*" + text + "*"
}

// FormatInlineCode formats inline code for Discord
func FormatInlineCode(code string) string {
	return "`" + code + "`"
}

// FormatQuote formats text as a quote block in Discord
func FormatQuote(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// FormatList formats items as a Discord list
func FormatList(items []string, ordered bool) string {
	list := make([]string, 0, len(items))
	for i, item := range items {
		if ordered {
			list = append(list, fmt.Sprintf("%d. %s", i+1, item))
		} else {
			list = append(list, "• "+item)
		}
	}
	return strings.Join(list, "\n")
}

// FormatPlan renders a finished plan as a Discord message body
func FormatPlan(result *state.PlanResult) string {
	var b strings.Builder

	b.WriteString(FormatBold("🎉 Party plan") + " " + FormatInlineCode(result.PlanID) + "\n\n")

	if overall := strings.TrimSpace(result.OverallPlan); overall != "" {
		b.WriteString(FormatMarkdown(overall) + "\n\n")
	}

	if result.EstimatedCost != nil {
		b.WriteString(FormatBold("Estimated cost: ") + formatKRW(*result.EstimatedCost) + "\n\n")
	}

	if len(result.Tasks) > 0 {
		items := make([]string, 0, len(result.Tasks))
		for _, t := range result.Tasks {
			items = append(items, fmt.Sprintf("%s (%s, %s)", FormatBold(t.Title), t.Deadline, t.Priority))
		}
		b.WriteString(FormatBold("Tasks") + "\n" + FormatList(items, true) + "\n\n")
	}

	if len(result.Timeline) > 0 {
		items := make([]string, 0, len(result.Timeline))
		for _, e := range result.Timeline {
			items = append(items, fmt.Sprintf("%s %s: %s", FormatInlineCode(e.Date), e.DayDescription, strings.Join(e.Tasks, ", ")))
		}
		b.WriteString(FormatBold("Timeline") + "\n" + FormatList(items, false) + "\n\n")
	}

	if len(result.Recommendations) > 0 {
		items := make([]string, 0, len(result.Recommendations))
		for _, r := range result.Recommendations {
			items = append(items, FormatItalic(r.Category)+": "+r.Suggestion)
		}
		b.WriteString(FormatBold("Recommendations") + "\n" + FormatQuote(FormatList(items, false)))
	}

	return strings.TrimSpace(b.String())
}

var krwPrinter = message.NewPrinter(language.Korean)

func formatKRW(amount float64) string {
	return krwPrinter.Sprintf("%.0f KRW", amount)
}
