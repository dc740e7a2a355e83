package dto

import "encoding/json"

type CommentRequest struct {
	Body        string          `json:"body"`
	Attachments json.RawMessage `json:"attachments,omitempty"`
	Version     *int            `json:"version,omitempty"`
}

func (r CommentRequest) Validate() error {
	var c checker
	c.required(r.Body, "Comment body is required")
	c.maxLen(r.Body, 10000, "Comment body must not exceed 10000 characters")
	c.check(len(r.Attachments) == 0 || json.Valid(r.Attachments), "Attachments must be valid JSON")
	return c.err()
}
