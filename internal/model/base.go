package model

import "time"

// BaseModel carries the server-assigned identity shared by every table row.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
