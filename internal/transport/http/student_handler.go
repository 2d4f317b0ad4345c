package httptransport

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"school/backend/internal/domain"
	"school/backend/internal/monitoring"
	"school/backend/internal/service"
	"school/backend/internal/storage"
)

// StudentHandler 学生相关的 HTTP 处理器
type StudentHandler struct {
	students *service.StudentService
	metrics  *monitoring.Metrics
}

// NewStudentHandler 创建学生处理器
func NewStudentHandler(students *service.StudentService, metrics *monitoring.Metrics) *StudentHandler {
	return &StudentHandler{students: students, metrics: metrics}
}

type studentRequest struct {
	Name      string  `json:"name" binding:"required"`
	Age       int     `json:"age" binding:"required,min=1"`
	FacultyID *string `json:"faculty_id"`
}

type studentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	FacultyID *string   `json:"faculty_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toStudentResponse(s *domain.Student) studentResponse {
	return studentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Age:       s.Age,
		FacultyID: s.FacultyID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toStudentResponses(students []domain.Student) []studentResponse {
	out := make([]studentResponse, 0, len(students))
	for i := range students {
		out = append(out, toStudentResponse(&students[i]))
	}
	return out
}

// createStudent godoc
// @Summary 创建学生
// @Tags Students
// @Accept json
// @Produce json
// @Success 201 {object} Response
func (h *StudentHandler) createStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	student, err := h.students.Create(service.CreateStudentInput{
		Name:      req.Name,
		Age:       req.Age,
		FacultyID: req.FacultyID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrFacultyNotFound) {
			BadRequest(c, GetErrorMessage(err))
			return
		}
		InternalError(c, MsgStudentCreateFailed)
		return
	}

	h.metrics.RecordStudentCreated()
	Created(c, toStudentResponse(student))
}

// getStudent godoc
// @Summary 获取学生详情
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) getStudent(c *gin.Context) {
	student, err := h.students.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrStudentNotFound) {
			NotFound(c, MsgStudentNotFound)
			return
		}
		InternalError(c, MsgInternalError)
		return
	}

	Success(c, toStudentResponse(student))
}

// updateStudent godoc
// @Summary 更新学生
// @Tags Students
// @Accept json
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) updateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	student, err := h.students.Update(c.Param("id"), service.CreateStudentInput{
		Name:      req.Name,
		Age:       req.Age,
		FacultyID: req.FacultyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrStudentNotFound):
			NotFound(c, MsgStudentNotFound)
		case errors.Is(err, storage.ErrFacultyNotFound):
			BadRequest(c, GetErrorMessage(err))
		default:
			InternalError(c, MsgStudentUpdateFailed)
		}
		return
	}

	Success(c, toStudentResponse(student))
}

// deleteStudent godoc
// @Summary 删除学生
// @Tags Students
// @Produce json
// @Success 204 {object} Response
func (h *StudentHandler) deleteStudent(c *gin.Context) {
	if err := h.students.Delete(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrStudentNotFound) {
			NotFound(c, MsgStudentNotFound)
			return
		}
		InternalError(c, MsgStudentDeleteFailed)
		return
	}

	h.metrics.RecordStudentDeleted()
	NoContent(c)
}

// filterByAge godoc
// @Summary 按年龄过滤学生
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) filterByAge(c *gin.Context) {
	age, err := strconv.Atoi(c.Query("age"))
	if err != nil {
		BadRequest(c, MsgInvalidAge)
		return
	}

	students, err := h.students.ByAge(age)
	if err != nil {
		InternalError(c, MsgStudentListFailed)
		return
	}

	Success(c, toStudentResponses(students))
}

// findByAgeBetween godoc
// @Summary 按年龄区间查询学生
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) findByAgeBetween(c *gin.Context) {
	min, err := strconv.Atoi(c.Query("min"))
	if err != nil {
		BadRequest(c, MsgInvalidAge)
		return
	}
	max, err := strconv.Atoi(c.Query("max"))
	if err != nil {
		BadRequest(c, MsgInvalidAge)
		return
	}

	students, err := h.students.ByAgeRange(min, max)
	if err != nil {
		InternalError(c, MsgStudentListFailed)
		return
	}

	Success(c, toStudentResponses(students))
}

// studentFaculty godoc
// @Summary 获取学生所属院系
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) studentFaculty(c *gin.Context) {
	faculty, err := h.students.FacultyOf(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrStudentNotFound):
			NotFound(c, MsgStudentNotFound)
		case errors.Is(err, storage.ErrFacultyNotFound):
			NotFound(c, MsgFacultyNotFound)
		default:
			InternalError(c, MsgInternalError)
		}
		return
	}

	Success(c, toFacultyResponse(faculty))
}

// countStudents godoc
// @Summary 获取学生总数
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) countStudents(c *gin.Context) {
	count, err := h.students.Count()
	if err != nil {
		InternalError(c, MsgStudentStatsFailed)
		return
	}

	Success(c, gin.H{"count": count})
}

// averageAge godoc
// @Summary 获取学生平均年龄
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) averageAge(c *gin.Context) {
	avg, err := h.students.AverageAge()
	if err != nil {
		InternalError(c, MsgStudentStatsFailed)
		return
	}

	Success(c, gin.H{"average_age": avg})
}

// lastFiveStudents godoc
// @Summary 获取最近创建的五个学生
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) lastFiveStudents(c *gin.Context) {
	students, err := h.students.LastFive()
	if err != nil {
		InternalError(c, MsgStudentListFailed)
		return
	}

	Success(c, toStudentResponses(students))
}

// firstSixStudents godoc
// @Summary 获取最早创建的六个学生
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) firstSixStudents(c *gin.Context) {
	students, err := h.students.FirstSix()
	if err != nil {
		InternalError(c, MsgStudentListFailed)
		return
	}

	Success(c, toStudentResponses(students))
}

// namesStartingWith godoc
// @Summary 获取指定首字母的学生姓名
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) namesStartingWith(c *gin.Context) {
	letter := c.Query("letter")
	if letter == "" {
		BadRequest(c, MsgInvalidLetter)
		return
	}

	names, err := h.students.NamesStartingWith(letter)
	if err != nil {
		InternalError(c, MsgStudentListFailed)
		return
	}

	Success(c, gin.H{"names": names})
}

// printNamesParallel godoc
// @Summary 并行打印全部学生姓名
// @Tags Students
// @Produce json
// @Success 200 {object} Response
func (h *StudentHandler) printNamesParallel(c *gin.Context) {
	printed, err := h.students.PrintNamesParallel()
	if err != nil {
		InternalError(c, MsgStudentListFailed)
		return
	}

	Success(c, gin.H{"printed": printed})
}
