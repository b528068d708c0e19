package domain

import "strings"

type Occasion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (o Occasion) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return NewValidationError("id", "is required")
	}
	if strings.TrimSpace(o.Name) == "" {
		return NewValidationError("name", "is required")
	}
	return nil
}
