package discord

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"party-planner/backend/internal/state"
	apperrors "party-planner/backend/pkg/errors"
)

// Planner is the part of the planning pipeline the bot needs
type Planner interface {
	CreatePartyPlan(ctx context.Context, req state.PlanRequest) (*state.PlanResult, error)
}

// Handler answers plan commands posted to Discord
type Handler struct {
	planner Planner
	prefix  string
	loc     *time.Location
	timeout time.Duration
	logger  *zap.Logger
}

// NewHandler creates a new Discord message handler
func NewHandler(planner Planner, prefix string, loc *time.Location, timeout time.Duration, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		planner: planner,
		prefix:  prefix,
		loc:     loc,
		timeout: timeout,
		logger:  logger,
	}
}

// HandleMessage processes an incoming Discord message
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from the bot itself
	if m.Author == nil || (s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}
	if m.Author.Bot {
		return
	}

	content := strings.TrimSpace(m.Content)
	if !h.Matches(content) {
		return
	}

	h.logger.Info("Processing plan command",
		zap.String("user_id", m.Author.ID),
		zap.String("channel_id", m.ChannelID),
		zap.Bool("is_dm", m.GuildID == ""),
	)

	if err := s.ChannelTyping(m.ChannelID); err != nil {
		h.logger.Debug("Failed to send typing indicator", zap.Error(err))
	}

	ctx := context.Background()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	h.sendLongMessage(s, m.ChannelID, h.Respond(ctx, content))
}

// Matches reports whether content is addressed to the bot
func (h *Handler) Matches(content string) bool {
	if !strings.HasPrefix(content, h.prefix) {
		return false
	}
	rest := content[len(h.prefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\n' || rest[0] == '\t'
}

// Respond runs a command and returns the reply text
func (h *Handler) Respond(ctx context.Context, content string) string {
	req, err := ParsePlanCommand(content, h.prefix, h.loc)
	if err != nil {
		h.logger.Debug("Rejected plan command", zap.Error(err))
		return "⚠️ " + err.Error() + "\n" + Usage
	}

	result, err := h.planner.CreatePartyPlan(ctx, req)
	if err != nil {
		var invalid state.ErrInvalidRequest
		if errors.As(err, &invalid) {
			return "⚠️ " + invalid.Error() + "\n" + Usage
		}

		var planningErr *apperrors.ErrPlanningFailed
		stage := "unknown"
		if errors.As(err, &planningErr) {
			stage = planningErr.Stage
		}
		h.logger.Error("Failed to create party plan",
			zap.Error(err),
			zap.String("stage", stage),
			zap.String("event_type", req.EventType),
		)
		if apperrors.IsErrorType(err, apperrors.ErrorTypeContext) {
			return "Sorry, planning took too long. Please try again."
		}
		return "Sorry, I couldn't put a plan together right now."
	}

	return FormatPlan(result)
}
