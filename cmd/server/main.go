package main

import (
	"os"

	"reasonchat/backend/internal/app"
)

// @title           ReasonChat API
// @version         1.0
// @description     Streaming chat backend with reasoning options, sources and persisted session history.
// @host            localhost:8000
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
