package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type FloorRepository struct {
	db *gorm.DB
}

func NewFloorRepository(db *gorm.DB) *FloorRepository {
	return &FloorRepository{db: db}
}

// List 分页列出平面图
func (r *FloorRepository) List(ctx context.Context, limit, offset *int) ([]entity.Floor, error) {
	l, o := Paginate(limit, offset)
	var floors []entity.Floor
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&floors).Error
	return floors, err
}

// GetByID 根据ID查找平面图
func (r *FloorRepository) GetByID(ctx context.Context, id uint) (*entity.Floor, error) {
	var floor entity.Floor
	if err := r.db.WithContext(ctx).First(&floor, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &floor, nil
}

// GetByName 根据名称查找平面图
func (r *FloorRepository) GetByName(ctx context.Context, name string) (*entity.Floor, error) {
	var floor entity.Floor
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&floor).Error; err != nil {
		return nil, notFound(err)
	}
	return &floor, nil
}

// Create 创建平面图
func (r *FloorRepository) Create(ctx context.Context, floor *entity.Floor) error {
	return r.db.WithContext(ctx).Create(floor).Error
}

// Save 保存平面图全部字段
func (r *FloorRepository) Save(ctx context.Context, floor *entity.Floor) error {
	return r.db.WithContext(ctx).Save(floor).Error
}

// Delete 删除平面图，区域级联由服务层显式处理
func (r *FloorRepository) Delete(ctx context.Context, floor *entity.Floor) error {
	return r.db.WithContext(ctx).Delete(floor).Error
}

type FloorZoneRepository struct {
	db *gorm.DB
}

func NewFloorZoneRepository(db *gorm.DB) *FloorZoneRepository {
	return &FloorZoneRepository{db: db}
}

// List 分页列出区域
func (r *FloorZoneRepository) List(ctx context.Context, limit, offset *int) ([]entity.FloorZone, error) {
	l, o := Paginate(limit, offset)
	var zones []entity.FloorZone
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&zones).Error
	return zones, err
}

// GetByID 根据ID查找区域
func (r *FloorZoneRepository) GetByID(ctx context.Context, id uint) (*entity.FloorZone, error) {
	var zone entity.FloorZone
	if err := r.db.WithContext(ctx).First(&zone, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &zone, nil
}

// ListByFloor 列出平面图的全部区域
func (r *FloorZoneRepository) ListByFloor(ctx context.Context, floorID uint) ([]entity.FloorZone, error) {
	var zones []entity.FloorZone
	err := r.db.WithContext(ctx).Where("floor_id = ?", floorID).Find(&zones).Error
	return zones, err
}

// Create 创建区域
func (r *FloorZoneRepository) Create(ctx context.Context, zone *entity.FloorZone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

// Save 保存区域全部字段
func (r *FloorZoneRepository) Save(ctx context.Context, zone *entity.FloorZone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete 删除区域
func (r *FloorZoneRepository) Delete(ctx context.Context, zone *entity.FloorZone) error {
	return r.db.WithContext(ctx).Delete(zone).Error
}

// DeleteByFloor 删除平面图下全部区域
func (r *FloorZoneRepository) DeleteByFloor(ctx context.Context, floorID uint) error {
	return r.db.WithContext(ctx).Where("floor_id = ?", floorID).Delete(&entity.FloorZone{}).Error
}
