package httptransport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"school/backend/internal/domain"
	"school/backend/internal/monitoring"
	"school/backend/internal/preview"
	"school/backend/internal/service"
	"school/backend/internal/storage"
)

// AvatarHandler 头像相关的 HTTP 处理器
type AvatarHandler struct {
	uploads *service.AvatarService
	queries *service.AvatarQueryService
	metrics *monitoring.Metrics
}

// NewAvatarHandler 创建头像处理器
func NewAvatarHandler(uploads *service.AvatarService, queries *service.AvatarQueryService, metrics *monitoring.Metrics) *AvatarHandler {
	return &AvatarHandler{uploads: uploads, queries: queries, metrics: metrics}
}

type avatarResponse struct {
	ID        string    `json:"id,omitempty"`
	StudentID string    `json:"student_id,omitempty"`
	FilePath  string    `json:"file_path,omitempty"`
	FileSize  int64     `json:"file_size,omitempty"`
	MediaType string    `json:"media_type,omitempty"`
	Preview   []byte    `json:"preview,omitempty"` // base64 编码输出
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func toAvatarResponse(a *domain.Avatar) avatarResponse {
	return avatarResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		FilePath:  a.FilePath,
		FileSize:  a.FileSize,
		MediaType: a.MediaType,
		Preview:   a.Preview,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAvatarResponses(avatars []domain.Avatar) []avatarResponse {
	out := make([]avatarResponse, 0, len(avatars))
	for i := range avatars {
		out = append(out, toAvatarResponse(&avatars[i]))
	}
	return out
}

// uploadAvatar godoc
// @Summary 上传学生头像
// @Description 接收 multipart 表单中 avatar 字段的图片文件，生成预览图并保存记录
// @Tags Avatars
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} Response
func (h *AvatarHandler) uploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		BadRequest(c, MsgAvatarFileRequired)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, MsgAvatarUploadFailed)
		return
	}
	defer file.Close()

	start := time.Now()
	err = h.uploads.Upload(service.UploadInput{
		StudentID: c.Param("id"),
		Filename:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Source:    file,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrStudentNotFound):
			h.metrics.RecordAvatarUploadFailure("student_not_found")
			NotFound(c, MsgStudentNotFound)
		case errors.Is(err, service.ErrExtensionMissing):
			h.metrics.RecordAvatarUploadFailure("extension_missing")
			BadRequest(c, GetErrorMessage(err))
		case errors.Is(err, preview.ErrUnsupportedFormat),
			errors.Is(err, preview.ErrImageTooNarrow):
			h.metrics.RecordAvatarUploadFailure("image_processing")
			BadRequest(c, MsgAvatarProcessFailed)
		default:
			h.metrics.RecordAvatarUploadFailure("internal")
			InternalError(c, MsgAvatarUploadFailed)
		}
		return
	}

	h.metrics.RecordAvatarUpload(fileHeader.Size, time.Since(start))
	SuccessWithMsg(c, "上传成功", nil)
}

// getAvatar godoc
// @Summary 获取学生头像记录
// @Description 学生没有头像时返回空记录而不是 404
// @Tags Avatars
// @Produce json
// @Success 200 {object} Response
func (h *AvatarHandler) getAvatar(c *gin.Context) {
	record, err := h.queries.Find(c.Param("id"))
	if err != nil {
		InternalError(c, MsgInternalError)
		return
	}

	Success(c, toAvatarResponse(record))
}

// getAvatarPreview godoc
// @Summary 获取学生头像预览图
// @Description 以存储的媒体类型直接返回预览图字节
// @Tags Avatars
// @Produce image/*
// @Success 200 {file} binary
func (h *AvatarHandler) getAvatarPreview(c *gin.Context) {
	record, err := h.queries.Find(c.Param("id"))
	if err != nil {
		InternalError(c, MsgInternalError)
		return
	}
	if record.IsEmpty() {
		NotFound(c, "头像不存在")
		return
	}

	c.Data(http.StatusOK, record.MediaType, record.Preview)
}

// listAvatars godoc
// @Summary 分页获取头像记录列表
// @Tags Avatars
// @Produce json
// @Success 200 {object} Response
func (h *AvatarHandler) listAvatars(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		BadRequest(c, MsgInvalidPaging)
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		BadRequest(c, MsgInvalidPaging)
		return
	}

	avatars, err := h.queries.Page(page, size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPage), errors.Is(err, service.ErrInvalidPageSize):
			BadRequest(c, GetErrorMessage(err))
		default:
			InternalError(c, MsgAvatarListFailed)
		}
		return
	}

	Success(c, toAvatarResponses(avatars))
}
