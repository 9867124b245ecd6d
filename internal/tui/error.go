package tui

import (
	"errors"
	"fmt"

	"github.com/portalcc/licensetui/portal"
)

// failureText is the toast for a failed request, with a hint when the cause
// is one we recognise.
func failureText(action string, err error) string {
	if err == nil {
		return "Failed to " + action
	}
	text := fmt.Sprintf("Failed to %s: %s", action, err)
	if hint := errorHint(err); hint != "" {
		text += "\n" + hint
	}
	return text
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, portal.ErrUnavailable):
		return "The licensing service could not be reached. Check -api and try again."
	case errors.Is(err, portal.ErrUnauthorized):
		return "The licensing service refused the request."
	case errors.Is(err, portal.ErrNotFound):
		return "The record no longer exists."
	case errors.Is(err, portal.ErrMalformedRecord):
		return "The licensing service sent data that could not be read."
	}
	return ""
}
