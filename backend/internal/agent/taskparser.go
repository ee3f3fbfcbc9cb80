package agent

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"party-planner/backend/internal/state"
	apperrors "party-planner/backend/pkg/errors"
)

var fencedJSONPattern = regexp.MustCompile("(?is)```json\\s*(.*?)```")

// taskStrategy pulls a candidate JSON document out of model output
type taskStrategy struct {
	name    string
	extract func(content string) (string, bool)
}

var taskStrategies = []taskStrategy{
	{name: "fenced_json", extract: fencedJSON},
	{name: "bracket_span", extract: bracketSpan},
	{name: "whole_text", extract: wholeText},
}

func fencedJSON(content string) (string, bool) {
	m := fencedJSONPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func bracketSpan(content string) (string, bool) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

func wholeText(content string) (string, bool) {
	return strings.TrimSpace(content), true
}

// ParseTasks tries each extraction strategy in order and returns the first
// non-empty task array that decodes. The error joins every strategy's failure.
func ParseTasks(content string) ([]state.Task, error) {
	var errs []error
	for _, s := range taskStrategies {
		raw, ok := s.extract(content)
		if !ok {
			continue
		}
		tasks, err := decodeTasks(raw)
		if err != nil {
			errs = append(errs, apperrors.NewContentParse(s.name, err))
			continue
		}
		return tasks, nil
	}
	return nil, errors.Join(errs...)
}

func decodeTasks(raw string) ([]state.Task, error) {
	var tasks []state.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, errors.New("empty task list")
	}
	return tasks, nil
}

// DefaultTasks is the task list used when model output cannot be parsed
func DefaultTasks() []state.Task {
	return []state.Task{
		{
			Title:         "Book the venue",
			Description:   "Reserve and confirm the event venue",
			Priority:      state.PriorityHigh,
			Deadline:      "D-14",
			EstimatedTime: "2 hours",
			Responsible:   "self",
		},
		{
			Title:         "Order food",
			Description:   "Order catering or food for the guests",
			Priority:      state.PriorityHigh,
			Deadline:      "D-7",
			EstimatedTime: "1 hour",
			Responsible:   "self",
		},
		{
			Title:         "Prepare decorations",
			Description:   "Buy and prepare the decorations",
			Priority:      state.PriorityMedium,
			Deadline:      "D-3",
			EstimatedTime: "3 hours",
			Responsible:   "self",
		},
	}
}
