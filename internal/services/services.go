// Package services implements the marketplace operations. Each operation asks
// the authorization gate first and returns *apperr.Error values that handlers
// translate to HTTP responses.
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/repository"
)

// storeErr maps a repository failure to the caller-facing taxonomy.
func storeErr(err error, notFoundMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Internal(err)
}

// parseTemplateID validates a client-supplied template id.
func parseTemplateID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperr.Validation(apperr.MsgTemplateIDRequired)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation(apperr.MsgInvalidID)
	}
	return id, nil
}

// normalizeTags trims tags and drops empty and repeated entries, keeping the first spelling.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
