package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
)

// ProductionHandler 工作中心、工单、工艺路线与BOM接口
type ProductionHandler struct {
	*Deps
}

// ============================================================
// 工作中心
// ============================================================

func (h *ProductionHandler) ListWorkCenters(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllWorkCenters(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ProductionHandler) GetWorkCenter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	wc, err := h.query(c).GetWorkCenter(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, wc)
}

func (h *ProductionHandler) CreateWorkCenter(c *gin.Context) {
	var in service.WorkCenterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	wc, err := h.mutation(c).CreateWorkCenter(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, wc)
}

// ============================================================
// 工单
// ============================================================

func (h *ProductionHandler) ListWorkOrders(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllWorkOrders(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ProductionHandler) GetWorkOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	wo, err := h.query(c).GetWorkOrder(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, wo)
}

func (h *ProductionHandler) GetWorkOrderByNumber(c *gin.Context) {
	number := c.Query("number")
	if number == "" {
		BadRequest(c, "number is required")
		return
	}
	wo, err := h.query(c).GetWorkOrderByNumber(c.Request.Context(), number)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, wo)
}

func (h *ProductionHandler) CreateWorkOrder(c *gin.Context) {
	var in service.WorkOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	wo, err := h.mutation(c).CreateWorkOrder(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, wo)
}

// ListWorkOrderOps 返回工单的工序，按sequence升序
func (h *ProductionHandler) ListWorkOrderOps(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ops, err := h.query(c).GetWorkOrderOps(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": ops})
}

func (h *ProductionHandler) ListAllWorkOrderOps(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllWorkOrderOps(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ProductionHandler) CreateWorkOrderOp(c *gin.Context) {
	var in service.WorkOrderOpInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	op, err := h.mutation(c).CreateWorkOrderOp(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, op)
}

// ============================================================
// 工艺路线
// ============================================================

func (h *ProductionHandler) ListRoutings(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllRoutings(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ProductionHandler) GetRouting(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	routing, err := h.query(c).GetRouting(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, routing)
}

func (h *ProductionHandler) CreateRouting(c *gin.Context) {
	var in service.RoutingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	routing, err := h.mutation(c).CreateRouting(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, routing)
}

// ListRoutingSteps 返回工艺路线的工步，按sequence升序
func (h *ProductionHandler) ListRoutingSteps(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	steps, err := h.query(c).GetRoutingSteps(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": steps})
}

func (h *ProductionHandler) CreateRoutingStep(c *gin.Context) {
	var in service.RoutingStepInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	step, err := h.mutation(c).CreateRoutingStep(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, step)
}

// ============================================================
// BOM
// ============================================================

func (h *ProductionHandler) ListBOMs(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllBOMs(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ProductionHandler) GetBOM(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	bom, err := h.query(c).GetBOM(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, bom)
}

func (h *ProductionHandler) CreateBOM(c *gin.Context) {
	var in service.BOMInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	bom, err := h.mutation(c).CreateBOM(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, bom)
}

func (h *ProductionHandler) ListBOMItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := h.query(c).GetBOMItems(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *ProductionHandler) CreateBOMItem(c *gin.Context) {
	var in service.BOMItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	item, err := h.mutation(c).CreateBOMItem(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, item)
}

// ============================================================
// 导出
// ============================================================

// ExportWorkOrders 导出工单列表为xlsx
func (h *ProductionHandler) ExportWorkOrders(c *gin.Context) {
	limit, offset := pageParams(c)
	f, filename, err := h.export(c).ExportWorkOrders(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.Logger.Error("write xlsx failed", zap.Error(err))
	}
}

// ExportBOM 导出BOM行项为xlsx
func (h *ProductionHandler) ExportBOM(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	f, filename, err := h.export(c).ExportBOM(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.Logger.Error("write xlsx failed", zap.Error(err))
	}
}
