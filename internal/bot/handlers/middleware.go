// Package handlers contains Telegram bot command, message, callback, and
// inline query handlers, along with their registration table and middleware.
package handlers

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// PrivateOnly creates a middleware that rejects non-private chat contexts:
// the bot leaves group, supergroup, and channel chats without processing the
// update.
func PrivateOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			if update.Message.Chat.Type != models.ChatTypePrivate {
				log := deps.Logger.With("middleware", "PrivateOnly")
				log.InfoContext(ctx, "Leaving non-private chat",
					"chat_id", update.Message.Chat.ID, "chat_type", update.Message.Chat.Type)

				if _, err := b.LeaveChat(ctx, &tgbot.LeaveChatParams{ChatID: update.Message.Chat.ID}); err != nil {
					log.ErrorContext(ctx, "Failed to leave chat", "error", err, "chat_id", update.Message.Chat.ID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}

// EditPending creates a middleware that diverts messages from users with a
// pending settings edit. A user in an edit state has their next text message
// of any kind consumed as the new settings value, so a command sent while
// editing becomes the value instead of being dispatched to its handler.
func EditPending(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			if deps.States.Get(update.Message.From.ID).Editing() {
				updateHandler{deps}.completeEdit(ctx, b, update.Message, strings.TrimSpace(update.Message.Text))
				return
			}

			next(ctx, b, update)
		}
	}
}

// AdminOnly creates a middleware that checks the sender against the admin id
// set of the settings record. Non-admins get a permission-denied reply and
// processing stops; their conversation state is untouched.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			if !deps.Settings.IsAdmin(userID) {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

				_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
					ChatID: chatID,
					Text:   deps.Config.Messages.NotAuthorized,
				})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
