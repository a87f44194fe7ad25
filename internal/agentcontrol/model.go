package agentcontrol

import "time"

// Entry is one agent control switch.
type Entry struct {
	ID        int64     `json:"id"`
	Control   string    `json:"control"`
	IsActive  bool      `json:"isActive"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// ListResponse is the full set of control entries.
type ListResponse struct {
	Controls   []Entry `json:"controls"`
	TotalCount int     `json:"totalCount"`
}

// CreateRequest creates a new control entry.
type CreateRequest struct {
	Control   string `json:"control"`
	IsActive  *bool  `json:"isActive"`
	Value     string `json:"value"`
	CreatedBy string `json:"createdBy"`
}

// UpdateRequest patches a control entry. Nil fields are left untouched.
type UpdateRequest struct {
	IsActive  *bool   `json:"isActive"`
	Value     *string `json:"value"`
	UpdatedBy string  `json:"updatedBy"`
}
