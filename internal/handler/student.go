package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records-api/internal/repository"
)

// StudentHandler serves the student CRUD endpoints. Deletion is soft:
// rows keep their data and are filtered out by deleted_at.
type StudentHandler struct {
	Students *repository.StudentRepo
}

func NewStudentHandler(s *repository.StudentRepo) *StudentHandler {
	return &StudentHandler{Students: s}
}

type studentReq struct {
	Name  string `json:"name"`
	Major string `json:"major"`
}

// List handles GET /v1/students and returns all live students.
func (h *StudentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Students.ListActive(ctx)
	if err != nil {
		c.Logger().Errorf("students: list failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "could not fetch students")
	}
	return respondData(c, http.StatusOK, "Successfully fetched data", items)
}

// Get handles GET /v1/students/:id.
func (h *StudentHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Students.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrStudentNotFound {
			return respondErr(c, http.StatusNotFound, "Student not found")
		}
		c.Logger().Errorf("students: get failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "could not fetch student")
	}
	return respondData(c, http.StatusOK, "Successfully fetched data", s)
}

// Create handles POST /v1/students. Name and major are both required.
func (h *StudentHandler) Create(c echo.Context) error {
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Major = strings.TrimSpace(req.Major)
	if req.Name == "" || req.Major == "" {
		return respondErr(c, http.StatusBadRequest, "Name and major are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Students.Create(ctx, req.Name, req.Major)
	if err != nil {
		c.Logger().Errorf("students: create failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "could not create student")
	}
	return respondData(c, http.StatusCreated, "Student successfully created", s)
}

// Update handles PUT /v1/students/:id and returns the updated row.
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Major = strings.TrimSpace(req.Major)
	if req.Name == "" || req.Major == "" {
		return respondErr(c, http.StatusBadRequest, "Name and major are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Students.Update(ctx, id, req.Name, req.Major)
	if err != nil {
		if err == repository.ErrStudentNotFound {
			return respondErr(c, http.StatusNotFound, "Student not found")
		}
		c.Logger().Errorf("students: update failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "could not update student")
	}
	return respondData(c, http.StatusOK, "Successfully updated data", s)
}

// Delete handles DELETE /v1/students/:id by stamping deleted_at.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Students.SoftDelete(ctx, id); err != nil {
		if err == repository.ErrStudentNotFound {
			return respondErr(c, http.StatusNotFound, "Student not found or already deleted")
		}
		c.Logger().Errorf("students: delete failed: %v", err)
		return respondErr(c, http.StatusInternalServerError, "could not delete student")
	}
	return respondData(c, http.StatusOK, fmt.Sprintf("Successfully deleted student with ID %d", id), echo.Map{"id": id})
}
