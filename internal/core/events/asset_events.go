package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssetSubmitted     = "asset.submitted"
	AssetApproved      = "asset.approved"
	AssetRejected      = "asset.rejected"
	AssetStatusChanged = "asset.status_changed"
	AssetDeleted       = "asset.deleted"
)

func NewAssetEvent(eventType, assetID, actorID string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"asset_id": assetID,
		"actor_id": actorID,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
