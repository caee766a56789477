package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const mapsBrowseLimit = 25

// NewMapsHandler returns a handler for the /maps command, which lists up to
// 25 browsed catalog leaves.
func NewMapsHandler(deps HandlerDeps) bot.HandlerFunc {
	return mapsHandler{deps}.Handle
}

type mapsHandler struct {
	deps HandlerDeps
}

func (h mapsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "maps")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Maps handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	leaves := h.deps.Catalog.Browse(mapsBrowseLimit)
	if len(leaves) == 0 {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.MapsListEmpty,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send empty catalog message", "error", err, "chat_id", chatID)
		}
		return
	}

	var builder strings.Builder
	for _, leaf := range leaves {
		fmt.Fprintf(&builder, "- <a href=\"%s\">%s</a>", leaf.URL(), html.EscapeString(leaf.Caption))
		if desc := leaf.DescriptionText(); desc != "" {
			builder.WriteString(" - " + html.EscapeString(desc))
		}
		builder.WriteString("\n")
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      builder.String(),
		ParseMode: models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send maps list", "error", err, "chat_id", chatID)
		return
	}

	log.InfoContext(ctx, "Sent maps list", "count", len(leaves), "chat_id", chatID)
}
