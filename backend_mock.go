//go:build mock

package main

import (
	"log/slog"
	"time"

	"github.com/portalcc/licensetui/portal"
	"github.com/portalcc/licensetui/portal/mock"
)

func GetBackend(apiURL string, timeout time.Duration, logger *slog.Logger) (portal.Backend, error) {
	logger.Info("using the in-memory backend", "ignored_api", apiURL)
	return mock.New()
}
