package catalog

import (
	"context"

	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/models"
)

// BanResult is the outcome of a ban toggle
type BanResult struct {
	User      *models.User `json:"user"`
	Persisted bool         `json:"persisted"`
}

// Moderation toggles bans in the demo catalog and writes the new status to the users
// database when a writer is configured
type Moderation struct {
	catalog DemoCatalog
	writer  AccountStatusWriter
}

func NewModeration(catalog DemoCatalog, writer AccountStatusWriter) *Moderation {
	return &Moderation{catalog: catalog, writer: writer}
}

// ToggleBan flips the status in the demo catalog first. A failed persistent write is
// logged and reported through Persisted; the demo change stands.
func (m *Moderation) ToggleBan(ctx context.Context, userID string) (*BanResult, error) {
	u, err := m.catalog.ToggleBan(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := &BanResult{User: u}
	if m.writer == nil {
		return res, nil
	}
	if err := m.writer.SetStatus(ctx, userID, u.Status); err != nil {
		logger.FromContext(ctx).Error("failed to persist user status",
			zap.String("uid", userID),
			zap.String("status", string(u.Status)),
			zap.Error(err),
		)
		return res, nil
	}
	res.Persisted = true
	return res, nil
}
