package domain

import (
	"time"
)

// Student 表示学生业务实体。
type Student struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);index"`
	Age       int       `json:"age" gorm:"index"`
	FacultyID *string   `json:"facultyId,omitempty" gorm:"type:varchar(36);index"` // 所属院系ID（可选）
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
