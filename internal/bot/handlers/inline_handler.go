package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/cogisbot/internal/database"
)

const inlineCacheSeconds = 300

// handleInlineQuery answers a type-ahead query with up to 50 catalog leaves:
// a blank query browses the catalog, anything else searches it. Result ids
// are canonical URLs so chosen-result notifications can be attributed.
func (h updateHandler) handleInlineQuery(ctx context.Context, b *bot.Bot, query *models.InlineQuery) {
	log := h.deps.Logger.With("handler", "inline_query")

	entries := h.deps.Inline.Build(query.Query)
	if len(entries) == 0 {
		log.DebugContext(ctx, "Inline query matched nothing", "query", query.Query, "user_id", query.From.ID)
		return
	}

	results := make([]models.InlineQueryResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, &models.InlineQueryResultArticle{
			ID:          entry.ID,
			Title:       entry.Title,
			Description: entry.Description,
			InputMessageContent: &models.InputTextMessageContent{
				MessageText: entry.MessageHTML,
				ParseMode:   models.ParseModeHTML,
			},
			ReplyMarkup: models.InlineKeyboardMarkup{
				InlineKeyboard: [][]models.InlineKeyboardButton{{
					{Text: h.deps.Config.Messages.OpenBrowser, URL: entry.URL},
				}},
			},
			ThumbnailURL: entry.ThumbURL,
		})
	}

	_, err := b.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       results,
		CacheTime:     inlineCacheSeconds,
		IsPersonal:    false,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to answer inline query", "error", err, "user_id", query.From.ID)
		return
	}

	log.InfoContext(ctx, "Answered inline query", "query", query.Query, "results", len(results), "user_id", query.From.ID)
}

// handleChosenInlineResult appends the choice to the click log. The result
// id carries the canonical URL of the chosen catalog leaf.
func (h updateHandler) handleChosenInlineResult(ctx context.Context, chosen *models.ChosenInlineResult) {
	log := h.deps.Logger.With("handler", "chosen_inline_result")

	click := &database.InlineClick{
		CreatedAt: time.Now().UTC(),
		ResultURL: chosen.ResultID,
		UserID:    chosen.From.ID,
	}
	if leaf, ok := h.deps.Catalog.LeafByURL(chosen.ResultID); ok {
		click.Title = leaf.Caption
	}
	if err := h.deps.Store.RecordInlineClick(ctx, click); err != nil {
		log.ErrorContext(ctx, "Failed to record inline click", "error", err, "result_id", chosen.ResultID)
		return
	}

	log.DebugContext(ctx, "Recorded inline choice", "result_id", chosen.ResultID, "user_id", chosen.From.ID)
}
