package domain

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage represents a contact form submission. Insert-only; there is
// no update or delete path.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Subject   string    `gorm:"not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "messages"
}

// BeforeCreate hook
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	return nil
}
