//go:build !mock

package main

import (
	"log/slog"
	"time"

	"github.com/portalcc/licensetui/portal"
	"github.com/portalcc/licensetui/portal/httpapi"
)

func GetBackend(apiURL string, timeout time.Duration, logger *slog.Logger) (portal.Backend, error) {
	return httpapi.New(apiURL, logger, httpapi.WithTimeout(timeout))
}
