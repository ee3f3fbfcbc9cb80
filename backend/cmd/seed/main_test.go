package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"party-planner/backend/internal/graph"
)

func TestPrintGuides(t *testing.T) {
	var buf bytes.Buffer
	guides := graph.DefaultGuides()

	printGuides(&buf, guides)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(guides)+1)
	assert.Contains(t, lines[0], guides[0].ID)
	assert.Contains(t, lines[0], guides[0].Title)
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], " guides"))
}
