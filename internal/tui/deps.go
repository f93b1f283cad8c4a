package tui

import (
	"log/slog"

	"github.com/Lixing-Zhang/course-catalog/internal/models"
)

type Deps struct {
	Items []models.Item

	Logger *slog.Logger
	// Debug adds a line of model state under the key help
	Debug bool
}
