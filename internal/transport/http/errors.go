package httptransport

import (
	"errors"

	"school/backend/internal/service"
	"school/backend/internal/storage"
)

// 错误消息映射表（业务错误 -> 中文消息）
var errorMessages = map[error]string{
	// Student 错误
	storage.ErrStudentNotFound: "学生不存在",

	// Faculty 错误
	storage.ErrFacultyNotFound: "院系不存在",

	// Avatar 错误
	storage.ErrAvatarNotFound:   "头像不存在",
	service.ErrExtensionMissing: "文件名缺少扩展名",
	service.ErrInvalidPage:      "页码必须大于等于1",
	service.ErrInvalidPageSize:  "每页数量必须大于等于1",
}

// GetErrorMessage 获取错误的中文消息
func GetErrorMessage(err error) string {
	for sentinel, msg := range errorMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}

// 通用错误消息
const (
	// 请求相关
	MsgInvalidRequest = "请求参数格式错误"
	MsgInvalidAge     = "年龄参数格式错误"
	MsgInvalidLetter  = "首字母参数不能为空"
	MsgInvalidPaging  = "分页参数格式错误"

	// 学生相关
	MsgStudentCreateFailed = "创建学生失败"
	MsgStudentNotFound     = "学生不存在"
	MsgStudentUpdateFailed = "更新学生失败"
	MsgStudentDeleteFailed = "删除学生失败"
	MsgStudentListFailed   = "获取学生列表失败"
	MsgStudentStatsFailed  = "获取学生统计失败"

	// 院系相关
	MsgFacultyCreateFailed = "创建院系失败"
	MsgFacultyNotFound     = "院系不存在"
	MsgFacultyUpdateFailed = "更新院系失败"
	MsgFacultyDeleteFailed = "删除院系失败"
	MsgFacultyListFailed   = "获取院系列表失败"

	// 头像相关
	MsgAvatarFileRequired  = "请在 avatar 字段中提供图片文件"
	MsgAvatarUploadFailed  = "上传头像失败"
	MsgAvatarProcessFailed = "头像图片处理失败"
	MsgAvatarListFailed    = "获取头像列表失败"

	// 服务器错误
	MsgInternalError = "服务器内部错误，请稍后重试"
)
