package main

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"party-planner/backend/pkg/config"
	apperrors "party-planner/backend/pkg/errors"
)

func TestRequireToken(t *testing.T) {
	err := requireToken(&config.Config{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))

	assert.NoError(t, requireToken(&config.Config{DiscordBotToken: "token"}))
}

func TestBotIntents(t *testing.T) {
	tests := []struct {
		name   string
		intent discordgo.Intent
	}{
		{"guild messages", discordgo.IntentsGuildMessages},
		{"direct messages", discordgo.IntentsDirectMessages},
		{"message content", discordgo.IntentsMessageContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotZero(t, botIntents&tt.intent)
		})
	}

	assert.Zero(t, botIntents&discordgo.IntentsGuildVoiceStates)
}
