package v1

import (
	fw_uuid "github.com/finwall/backend/internal/uuid"
)

// URIID binds the resource ID from the request path.
type URIID struct {
	ID fw_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
