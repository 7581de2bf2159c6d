package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
)

// OrgHandler 部门与用户接口
type OrgHandler struct {
	*Deps
}

// ============================================================
// 部门
// ============================================================

func (h *OrgHandler) ListDepartments(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllDepartments(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *OrgHandler) GetDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dept, err := h.query(c).GetDepartment(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, dept)
}

// GetDepartmentByTitle 按名称查部门
func (h *OrgHandler) GetDepartmentByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		BadRequest(c, "title is required")
		return
	}
	dept, err := h.query(c).GetDepartmentByTitle(c.Request.Context(), title)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, dept)
}

func (h *OrgHandler) CreateDepartment(c *gin.Context) {
	var in service.DepartmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	dept, err := h.mutation(c).CreateDepartment(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, dept)
}

func (h *OrgHandler) UpdateDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.DepartmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	dept, err := h.mutation(c).UpdateDepartment(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, dept)
}

func (h *OrgHandler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeleteDepartment(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}

// ============================================================
// 用户
// ============================================================

func (h *OrgHandler) ListUsers(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllUsers(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *OrgHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.query(c).GetUser(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, user)
}

func (h *OrgHandler) GetUserByUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		BadRequest(c, "username is required")
		return
	}
	user, err := h.query(c).GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, user)
}

func (h *OrgHandler) CreateUser(c *gin.Context) {
	var in service.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	user, err := h.mutation(c).CreateUser(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, user)
}

func (h *OrgHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	user, err := h.mutation(c).UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, user)
}

func (h *OrgHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeleteUser(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}
