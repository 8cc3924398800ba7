package dto

import (
	"time"

	"clinic-backoffice/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64                `json:"id"`
	User      *UserSummaryResponse `json:"user,omitempty"`
	Action    string               `json:"action"`
	Metadata  entity.JSON          `json:"metadata"`
	CreatedAt time.Time            `json:"createdAt"`
}
