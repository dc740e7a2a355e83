package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID          uuid.UUID       `json:"id"`
	TaskID      uuid.UUID       `json:"taskId"`
	UserID      uuid.UUID       `json:"userId"`
	Body        string          `json:"body"`
	Attachments json.RawMessage `json:"attachments"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Version     int             `json:"version"`
}
