package models

// CategoryRule maps a transaction's (text, entity) pair to a user-assigned
// category. Rules are seeded with a nil category when a pair is first seen
// during ingestion and curated by the user afterwards. A transaction's
// effective category is resolved by joining on the pair, never stored on the
// transaction itself.
type CategoryRule struct {
	Text     string  `gorm:"primaryKey" json:"text"`
	Entity   string  `gorm:"primaryKey" json:"entity"`
	Category *string `json:"category"`
}

// TableName keeps the table name aligned with the ingestion schema.
func (CategoryRule) TableName() string {
	return "categories"
}
