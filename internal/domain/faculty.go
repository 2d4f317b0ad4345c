package domain

import (
	"time"
)

// Faculty 表示院系业务实体。
type Faculty struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);index"`
	Color     string    `json:"color" gorm:"type:varchar(100);index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
