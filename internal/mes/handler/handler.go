package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/middleware"
)

// Deps 处理器共享依赖。服务按请求构造，绑定到当前请求事务。
type Deps struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Events *service.ActivityPublisher
}

func (d *Deps) query(c *gin.Context) *service.QueryService {
	return service.NewQueryService(repository.NewRepositories(middleware.Tx(c)))
}

func (d *Deps) mutation(c *gin.Context) *service.MutationService {
	return service.NewMutationService(repository.NewRepositories(middleware.Tx(c)), d.Events, d.Cfg.Policy)
}

func (d *Deps) export(c *gin.Context) *service.ExportService {
	return service.NewExportService(repository.NewRepositories(middleware.Tx(c)))
}

// Handlers 处理器集合
type Handlers struct {
	Org        *OrgHandler
	Part       *PartHandler
	Production *ProductionHandler
	Floor      *FloorHandler
	Activity   *ActivityHandler
	Health     *HealthHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(cfg *config.Config, logger *zap.Logger, db *gorm.DB, rdb *redis.Client) *Handlers {
	deps := &Deps{
		Cfg:    cfg,
		Logger: logger,
		Events: service.NewActivityPublisher(rdb, logger),
	}
	return &Handlers{
		Org:        &OrgHandler{deps},
		Part:       &PartHandler{deps},
		Production: &ProductionHandler{deps},
		Floor:      &FloorHandler{deps},
		Activity:   &ActivityHandler{deps},
		Health:     &HealthHandler{DB: db, Redis: rdb, Logger: logger},
	}
}

// Response 通用响应结构
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: "OK", Message: "success", Data: data})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: "OK", Message: "success", Data: data})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: "BAD_REQUEST", Message: message})
}

// Fail 将服务层错误翻译为协议错误码。协议编码只在这一层发生。
func Fail(c *gin.Context, logger *zap.Logger, err error) {
	var nf *service.NotFoundError
	var cf *service.ConflictError
	var ve *service.ValidationError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, Response{Code: "NOT_FOUND", Message: nf.Error()})
	case errors.As(err, &cf):
		c.JSON(http.StatusConflict, Response{Code: "CONFLICT", Message: cf.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, Response{Code: "BAD_REQUEST", Message: ve.Error()})
	default:
		logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Code: "INTERNAL", Message: "internal server error"})
	}
}

// pathID 解析路径中的数字ID
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid id: "+c.Param("id"))
		return 0, false
	}
	return uint(id), true
}

// pageParams 解析limit/offset查询参数，缺省留给仓库层裁剪
func pageParams(c *gin.Context) (limit, offset *int) {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = &n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = &n
		}
	}
	return limit, offset
}
