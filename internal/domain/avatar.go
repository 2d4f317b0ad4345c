package domain

import (
	"time"
)

// Avatar 表示学生头像记录：磁盘原图的元数据加上内嵌的预览图。
//
// 每个学生最多只有一条记录（StudentID 唯一）。重复上传时记录被整体覆盖，
// 不保留历史版本。Preview 仅在原图写入且解码成功后才会被设置。
type Avatar struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	StudentID string    `json:"studentId" gorm:"type:varchar(36);uniqueIndex"`
	FilePath  string    `json:"filePath" gorm:"type:varchar(512)"`
	FileSize  int64     `json:"fileSize"`
	MediaType string    `json:"mediaType" gorm:"type:varchar(100)"`
	Preview   []byte    `json:"preview,omitempty"` // 缩略图二进制数据（BLOB 列）
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmpty 判断记录是否为"无头像"的空投影。
func (a *Avatar) IsEmpty() bool {
	return a.ID == "" && a.StudentID == "" && len(a.Preview) == 0
}
