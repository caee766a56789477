package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCatalogRefreshHandler returns a handler for the /get_catalog command,
// which triggers a catalog refetch. A failed fetch keeps the previous tree.
func NewCatalogRefreshHandler(deps HandlerDeps) bot.HandlerFunc {
	return catalogRefreshHandler{deps}.Handle
}

type catalogRefreshHandler struct {
	deps HandlerDeps
}

func (h catalogRefreshHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "get_catalog")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Catalog handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	_, err := b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	if err != nil {
		log.DebugContext(ctx, "Failed to send typing action", "error", err, "chat_id", chatID)
	}

	reply := h.deps.Config.Messages.CatalogFetched
	if err := h.deps.Catalog.Refresh(ctx); err != nil {
		log.ErrorContext(ctx, "Catalog refresh failed", "error", err, "chat_id", chatID)
		reply = h.deps.Config.Messages.CatalogFetchFailed
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: reply}); err != nil {
		log.ErrorContext(ctx, "Failed to send catalog refresh reply", "error", err, "chat_id", chatID)
	}
}
