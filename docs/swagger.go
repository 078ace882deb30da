// Package docs Note Slides API
//
// @title  Note Slides API
// @version 1.0.0
// @description Quote and article notes, ordered for display as swipeable slides.
// @host      localhost:8080
// @BasePath /api
// @schemes http https
package docs

import (
	_ "note-slides/cmd/server/handlers"
	_ "note-slides/cmd/server/handlers/httperr"
	_ "note-slides/internal/services/notes"
)
