package registry

import "time"

// Identifier is one reserved identifier within a uniqueness namespace.
// The composite unique index is the authoritative duplicate check: the
// advisory availability lookup may race, the constraint never does.
type Identifier struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Namespace string    `gorm:"column:namespace;not null;uniqueIndex:idx_identifiers_ns_value"`
	Value     string    `gorm:"column:value;not null;uniqueIndex:idx_identifiers_ns_value"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Identifier) TableName() string {
	return "identifiers"
}
