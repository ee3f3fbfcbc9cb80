package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"party-planner/backend/internal/constants"
)

// Part indicator format "*(Part X/Y)*" is about 15 chars
const partIndicatorReserve = 20

// sendLongMessage sends content, splitting it into numbered parts when it exceeds Discord's limit
func (h *Handler) sendLongMessage(s *discordgo.Session, channelID, content string) {
	chunks := chunkMessage(content, constants.DiscordMaxMessageLength)

	for i, message := range chunks {
		if _, err := s.ChannelMessageSend(channelID, message); err != nil {
			h.logger.Error("Failed to send message chunk",
				zap.Error(err),
				zap.String("channel_id", channelID),
				zap.Int("chunk", i+1),
				zap.Int("total_chunks", len(chunks)),
			)
			break
		}

		// Brief pause between messages to stay clear of rate limits
		if i < len(chunks)-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// chunkMessage splits content into messages no longer than maxLength characters,
// appending a part indicator when more than one message is needed
func chunkMessage(content string, maxLength int) []string {
	if utf8.RuneCountInString(content) <= maxLength {
		return []string{content}
	}

	chunks := splitMessage(content, maxLength-partIndicatorReserve)
	for i := range chunks {
		chunks[i] = chunks[i] + "\n" + fmt.Sprintf("*(Part %d/%d)*", i+1, len(chunks))
	}
	return chunks
}

// splitMessage splits on line boundaries, never breaking inside a code block
// unless the block alone exceeds maxLength. Lengths are counted in runes.
func splitMessage(content string, maxLength int) []string {
	if utf8.RuneCountInString(content) <= maxLength {
		return []string{content}
	}

	var (
		chunks      []string
		current     strings.Builder
		currentLen  int
		inCodeBlock bool
		fence       string
	)

	flush := func() {
		if currentLen == 0 {
			return
		}
		text := current.String()
		if inCodeBlock {
			text += "\n```"
		}
		chunks = append(chunks, text)
		current.Reset()
		currentLen = 0
		if inCodeBlock {
			current.WriteString(fence)
			currentLen = utf8.RuneCountInString(fence)
		}
	}

	add := func(line string, opensBlock bool) {
		n := utf8.RuneCountInString(line)
		sep := 0
		if currentLen > 0 {
			sep = 1
		}
		// Keep room for a closing fence when a chunk ends inside a code block
		limit := maxLength
		if inCodeBlock || opensBlock {
			limit -= 4
		}
		if currentLen+sep+n > limit {
			flush()
			sep = 0
			if currentLen > 0 {
				sep = 1
			}
		}
		if sep == 1 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
		currentLen += sep + n
	}

	for _, line := range strings.Split(content, "\n") {
		isFence := strings.HasPrefix(strings.TrimSpace(line), "```")
		for _, piece := range hardWrap(line, maxLength/2) {
			add(piece, isFence && !inCodeBlock)
		}
		if isFence {
			if inCodeBlock {
				inCodeBlock = false
				fence = ""
			} else {
				inCodeBlock = true
				fence = strings.TrimSpace(line)
			}
		}
	}
	inCodeBlock = false
	flush()

	return chunks
}

// hardWrap breaks a single overlong line into rune-safe pieces
func hardWrap(line string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	var pieces []string
	runes := []rune(line)
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		pieces = append(pieces, string(runes[:cut]))
		runes = runes[cut:]
		if len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}
	return pieces
}
