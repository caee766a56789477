package handlers

import (
	"log/slog"

	"github.com/edgard/cogisbot/internal/catalog"
	"github.com/edgard/cogisbot/internal/config"
	"github.com/edgard/cogisbot/internal/conversation"
	"github.com/edgard/cogisbot/internal/database"
	"github.com/edgard/cogisbot/internal/search"
	"github.com/edgard/cogisbot/internal/settings"
)

// HandlerDeps provides dependencies for Telegram command and message
// handlers. Everything is injected; handlers hold no global state.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      database.Store
	Settings   *settings.Store
	Catalog    *catalog.Service
	Aggregator *search.Aggregator
	Inline     *search.InlineBuilder
	States     *conversation.Manager
}
