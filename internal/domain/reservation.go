package domain

import (
	"time"

	"gorm.io/gorm"
)

// Reservation represents a confirmed appointment booking. A slot is the
// (Date, Time) pair; the composite unique index closes the check-then-insert
// race between concurrent requests for the same slot.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"not null" json:"phone"`
	Email     string    `gorm:"not null" json:"email"`
	Hairstyle string    `gorm:"not null" json:"hairstyle"`
	Date      string    `gorm:"not null;uniqueIndex:idx_reservations_slot" json:"date"` // 2006-01-02
	Time      string    `gorm:"not null;uniqueIndex:idx_reservations_slot" json:"time"` // 15:04
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// BeforeCreate hook
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	r.CreatedAt = time.Now()
	return nil
}
