package httptransport

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"school/backend/internal/domain"
	"school/backend/internal/service"
	"school/backend/internal/storage"
)

// FacultyHandler 院系相关的 HTTP 处理器
type FacultyHandler struct {
	faculties *service.FacultyService
}

// NewFacultyHandler 创建院系处理器
func NewFacultyHandler(faculties *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{faculties: faculties}
}

type facultyRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type facultyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toFacultyResponse(f *domain.Faculty) facultyResponse {
	return facultyResponse{
		ID:        f.ID,
		Name:      f.Name,
		Color:     f.Color,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func toFacultyResponses(faculties []domain.Faculty) []facultyResponse {
	out := make([]facultyResponse, 0, len(faculties))
	for i := range faculties {
		out = append(out, toFacultyResponse(&faculties[i]))
	}
	return out
}

// createFaculty godoc
// @Summary 创建院系
// @Tags Faculties
// @Accept json
// @Produce json
// @Success 201 {object} Response
func (h *FacultyHandler) createFaculty(c *gin.Context) {
	var req facultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	faculty, err := h.faculties.Create(service.CreateFacultyInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		InternalError(c, MsgFacultyCreateFailed)
		return
	}

	Created(c, toFacultyResponse(faculty))
}

// getFaculty godoc
// @Summary 获取院系详情
// @Tags Faculties
// @Produce json
// @Success 200 {object} Response
func (h *FacultyHandler) getFaculty(c *gin.Context) {
	faculty, err := h.faculties.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrFacultyNotFound) {
			NotFound(c, MsgFacultyNotFound)
			return
		}
		InternalError(c, MsgInternalError)
		return
	}

	Success(c, toFacultyResponse(faculty))
}

// updateFaculty godoc
// @Summary 更新院系
// @Tags Faculties
// @Accept json
// @Produce json
// @Success 200 {object} Response
func (h *FacultyHandler) updateFaculty(c *gin.Context) {
	var req facultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	faculty, err := h.faculties.Update(c.Param("id"), service.CreateFacultyInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		if errors.Is(err, storage.ErrFacultyNotFound) {
			NotFound(c, MsgFacultyNotFound)
			return
		}
		InternalError(c, MsgFacultyUpdateFailed)
		return
	}

	Success(c, toFacultyResponse(faculty))
}

// deleteFaculty godoc
// @Summary 删除院系
// @Tags Faculties
// @Produce json
// @Success 204 {object} Response
func (h *FacultyHandler) deleteFaculty(c *gin.Context) {
	if err := h.faculties.Delete(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrFacultyNotFound) {
			NotFound(c, MsgFacultyNotFound)
			return
		}
		InternalError(c, MsgFacultyDeleteFailed)
		return
	}

	NoContent(c)
}

// listFaculties godoc
// @Summary 查询院系列表
// @Description 支持按名称（不区分大小写）或颜色过滤，均为空时返回全部
// @Tags Faculties
// @Produce json
// @Success 200 {object} Response
func (h *FacultyHandler) listFaculties(c *gin.Context) {
	faculties, err := h.faculties.Find(c.Query("name"), c.Query("color"))
	if err != nil {
		InternalError(c, MsgFacultyListFailed)
		return
	}

	Success(c, toFacultyResponses(faculties))
}

// facultyStudents godoc
// @Summary 获取院系的全部学生
// @Tags Faculties
// @Produce json
// @Success 200 {object} Response
func (h *FacultyHandler) facultyStudents(c *gin.Context) {
	students, err := h.faculties.StudentsOf(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrFacultyNotFound) {
			NotFound(c, MsgFacultyNotFound)
			return
		}
		InternalError(c, MsgStudentListFailed)
		return
	}

	Success(c, toStudentResponses(students))
}

// longestFacultyName godoc
// @Summary 获取最长的院系名称
// @Tags Faculties
// @Produce json
// @Success 200 {object} Response
func (h *FacultyHandler) longestFacultyName(c *gin.Context) {
	name, err := h.faculties.LongestName()
	if err != nil {
		InternalError(c, MsgFacultyListFailed)
		return
	}

	Success(c, gin.H{"name": name})
}
