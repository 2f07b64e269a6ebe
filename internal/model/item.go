// Package model defines the data structures shared across layers.
//
// The JSON tags here ARE the persisted format: the backing file is just a
// JSON array of Item values, so renaming a tag is a storage migration.
package model

// Item is the sole persisted entity.
//
// UpdatedAt is a pointer so that "never updated" serialises as an absent
// key (omitempty) rather than a zero timestamp.
type Item struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
}

// ItemPatch carries a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string
	Description *string
	UpdatedAt   Timestamp
}

// Apply overwrites the provided fields on it and stamps UpdatedAt.
func (p ItemPatch) Apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	ts := p.UpdatedAt
	it.UpdatedAt = &ts
}
