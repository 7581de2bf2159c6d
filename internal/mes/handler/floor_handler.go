package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
)

// FloorHandler 车间平面图与区域接口
type FloorHandler struct {
	*Deps
}

// ============================================================
// 平面图
// ============================================================

func (h *FloorHandler) ListFloors(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllFloors(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *FloorHandler) GetFloor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	floor, err := h.query(c).GetFloor(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, floor)
}

func (h *FloorHandler) CreateFloor(c *gin.Context) {
	var in service.FloorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	floor, err := h.mutation(c).CreateFloor(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, floor)
}

func (h *FloorHandler) UpdateFloor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.FloorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	floor, err := h.mutation(c).UpdateFloor(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, floor)
}

// DeleteFloor 删除平面图并级联删除其区域
func (h *FloorHandler) DeleteFloor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeleteFloor(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}

// ListFloorZonesByFloor 返回平面图下的全部区域
func (h *FloorHandler) ListFloorZonesByFloor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	zones, err := h.query(c).GetFloorZonesByFloor(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": zones})
}

// ============================================================
// 区域
// ============================================================

func (h *FloorHandler) ListFloorZones(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := h.query(c).GetAllFloorZones(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

func (h *FloorHandler) GetFloorZone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	zone, err := h.query(c).GetFloorZone(c.Request.Context(), id)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, zone)
}

func (h *FloorHandler) CreateFloorZone(c *gin.Context) {
	var in service.FloorZoneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	zone, err := h.mutation(c).CreateFloorZone(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, zone)
}

func (h *FloorHandler) UpdateFloorZone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.FloorZoneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	zone, err := h.mutation(c).UpdateFloorZone(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, zone)
}

func (h *FloorHandler) DeleteFloorZone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.mutation(c).DeleteFloorZone(c.Request.Context(), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, nil)
}
