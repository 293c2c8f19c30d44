package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnadhif/student-records-api/internal/models"
	"github.com/mnadhif/student-records-api/internal/service"
	appErrors "github.com/mnadhif/student-records-api/pkg/errors"
	"github.com/mnadhif/student-records-api/pkg/response"
)

// StudentHandler exposes the student CRUD endpoints. Every route is
// session-gated by middleware before these methods run.
type StudentHandler struct {
	students *service.StudentService
	exports  *service.ExportService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, exports *service.ExportService) *StudentHandler {
	return &StudentHandler{students: students, exports: exports}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {array} models.Student
// @Failure 401 {object} errors.Error
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.Student
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} models.Student
// @Failure 400 {object} errors.Error
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, "error creating student"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// replaceRequest is the collection-level update form: the record id travels
// in the body next to the fields.
type replaceRequest struct {
	ID string `json:"_id"`
	models.StudentPatch
}

// Replace godoc
// @Summary Update student (id in body)
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body handler.replaceRequest true "Student payload with _id"
// @Success 200 {object} models.Student
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /students [put]
func (h *StudentHandler) Replace(c *gin.Context) {
	var req replaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}
	if req.ID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrBadRequest, "student id is required"))
		return
	}

	student, err := h.students.Replace(c.Request.Context(), req.ID, req.StudentPatch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.StudentPatch true "Partial fields"
// @Success 200 {object} models.Student
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var patch models.StudentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	student, changed, err := h.students.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !changed {
		response.Message(c, http.StatusOK, "no changes detected, document remains the same")
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "student deleted successfully")
}

// Export godoc
// @Summary Export the roster
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} errors.Error
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	result, err := h.exports.Render(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
