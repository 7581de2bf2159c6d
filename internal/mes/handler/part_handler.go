package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
)

// PartHandler 零件、缺陷与质检接口
type PartHandler struct {
	*Deps
}

// ============================================================
// 零件
// ============================================================

func (h *PartHandler) ListParts(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllParts(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *PartHandler) GetPart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	part, err := h.query(c).GetPart(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, part)
}

func (h *PartHandler) CreatePart(c *gin.Context) {
	var in service.PartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	part, err := h.mutation(c).CreatePart(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, part)
}

func (h *PartHandler) UpdatePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.PartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	part, err := h.mutation(c).UpdatePart(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, part)
}

func (h *PartHandler) DeletePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeletePart(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}

// ============================================================
// 缺陷分类
// ============================================================

func (h *PartHandler) ListDefectCategories(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllDefectCategories(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *PartHandler) GetDefectCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.query(c).GetDefectCategory(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, cat)
}

func (h *PartHandler) CreateDefectCategory(c *gin.Context) {
	var in service.DefectCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cat, err := h.mutation(c).CreateDefectCategory(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, cat)
}

func (h *PartHandler) UpdateDefectCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.DefectCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cat, err := h.mutation(c).UpdateDefectCategory(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, cat)
}

func (h *PartHandler) DeleteDefectCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeleteDefectCategory(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}

// ============================================================
// 缺陷
// ============================================================

func (h *PartHandler) ListDefects(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllDefects(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *PartHandler) GetDefect(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	defect, err := h.query(c).GetDefect(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, defect)
}

// queryUint 解析可选的数字查询参数
func queryUint(c *gin.Context, name string) (uint, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// FindDefect 按零件/分类/部门组合查首条缺陷。多条命中时取存储序第一条。
func (h *PartHandler) FindDefect(c *gin.Context) {
	partID, hasPart := queryUint(c, "part_id")
	categoryID, hasCategory := queryUint(c, "category_id")
	departmentID, hasDepartment := queryUint(c, "department_id")

	ctx := c.Request.Context()
	svc := h.query(c)

	var (
		defect interface{}
		err    error
	)
	switch {
	case hasPart && hasCategory:
		defect, err = svc.GetDefectByPartAndCategory(ctx, partID, categoryID)
	case hasPart && hasDepartment:
		defect, err = svc.GetDefectByPartAndDepartment(ctx, partID, departmentID)
	case hasPart:
		defect, err = svc.GetDefectByPart(ctx, partID)
	case hasCategory:
		defect, err = svc.GetDefectByCategory(ctx, categoryID)
	default:
		BadRequest(c, "at least one of part_id, category_id is required")
		return
	}
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, defect)
}

func (h *PartHandler) CreateDefect(c *gin.Context) {
	var in service.DefectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	defect, err := h.mutation(c).CreateDefect(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, defect)
}

func (h *PartHandler) UpdateDefect(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.DefectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	defect, err := h.mutation(c).UpdateDefect(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, defect)
}

func (h *PartHandler) DeleteDefect(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeleteDefect(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}

// ============================================================
// 质检
// ============================================================

func (h *PartHandler) ListQualities(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllQualities(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *PartHandler) GetQuality(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	q, err := h.query(c).GetQuality(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, q)
}

func (h *PartHandler) FindQuality(c *gin.Context) {
	partID, hasPart := queryUint(c, "part_id")
	if !hasPart {
		BadRequest(c, "part_id is required")
		return
	}
	q, err := h.query(c).GetQualityByPart(c.Request.Context(), partID)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, q)
}

func (h *PartHandler) CreateQuality(c *gin.Context) {
	var in service.QualityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	q, err := h.mutation(c).CreateQuality(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, q)
}

func (h *PartHandler) UpdateQuality(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.QualityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	q, err := h.mutation(c).UpdateQuality(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, q)
}

func (h *PartHandler) DeleteQuality(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeleteQuality(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}
