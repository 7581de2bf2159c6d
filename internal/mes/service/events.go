package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// ActivityChannel 操作日志事件发布频道
const ActivityChannel = "mes:activity"

// ActivityPublisher 将操作日志以JSON发布到Redis频道，供看板等订阅方消费。
// rdb为nil时发布是空操作，发布失败只记日志不影响写入事务。
type ActivityPublisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewActivityPublisher(rdb *redis.Client, logger *zap.Logger) *ActivityPublisher {
	return &ActivityPublisher{rdb: rdb, logger: logger}
}

func (p *ActivityPublisher) Publish(ctx context.Context, log *entity.ActivityLog) {
	if p == nil || p.rdb == nil {
		return
	}
	payload, err := json.Marshal(log)
	if err != nil {
		p.logger.Warn("marshal activity event failed", zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, ActivityChannel, payload).Err(); err != nil {
		p.logger.Warn("publish activity event failed",
			zap.Uint("log_id", log.ID), zap.Error(err))
	}
}
