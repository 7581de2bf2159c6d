package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
)

// ActivityHandler 操作日志接口
type ActivityHandler struct {
	*Deps
}

func (h *ActivityHandler) ListActivityLogs(c *gin.Context) {
	limit, offset := pageParams(c)

	if workOrderID, ok := queryUint(c, "work_order_id"); ok {
		logs, err := h.query(c).GetActivityLogsForWorkOrder(c.Request.Context(), workOrderID)
		if err != nil {
			Fail(c, h.Logger, err)
			return
		}
		Success(c, gin.H{"items": logs})
		return
	}

	items, err := h.query(c).GetAllActivityLogs(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// CreateActivityLog 追加一条操作日志并发布事件
func (h *ActivityHandler) CreateActivityLog(c *gin.Context) {
	var in service.ActivityLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	log, err := h.mutation(c).CreateActivityLog(c.Request.Context(), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, log)
}
