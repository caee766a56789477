package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatsHandler returns a handler for the /stats command, which summarizes
// the inline-result click log grouped by result, most clicked first.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Stats handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	stats, err := h.deps.Store.GetClickStats(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load click stats", "error", err, "chat_id", chatID)
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.GeneralError,
		})
		if sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	if len(stats) == 0 {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.StatsEmpty,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send empty stats message", "error", err, "chat_id", chatID)
		}
		return
	}

	var builder strings.Builder
	builder.WriteString(h.deps.Config.Messages.StatsHeader + "\n")
	for _, stat := range stats {
		label := stat.Title
		if label == "" {
			label = stat.ResultURL
		}
		fmt.Fprintf(&builder, "%d - %s\n", stat.Count, label)
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: builder.String()})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send stats", "error", err, "chat_id", chatID)
		return
	}

	log.InfoContext(ctx, "Sent click stats", "results", len(stats), "chat_id", chatID)
}
