package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// ---- Floor ----

func (s *MutationService) CreateFloor(ctx context.Context, in FloorInput) (*entity.Floor, error) {
	if in.Name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	_, err := s.repos.Floor.GetByName(ctx, in.Name)
	absent, err := checkAbsent(err)
	if err != nil {
		return nil, fmt.Errorf("check floor name: %w", err)
	}
	if !absent {
		return nil, conflictErr("floor", "name", in.Name)
	}

	floor := &entity.Floor{Name: in.Name, Description: in.Description}
	if err := s.repos.Floor.Create(ctx, floor); err != nil {
		if isDuplicate(err) {
			return nil, conflictErr("floor", "name", in.Name)
		}
		return nil, fmt.Errorf("create floor: %w", err)
	}
	return floor, nil
}

func (s *MutationService) UpdateFloor(ctx context.Context, id uint, in FloorInput) (*entity.Floor, error) {
	if in.Name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	floor, err := s.repos.Floor.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "floor", id)
	}

	if in.Name != floor.Name {
		_, err := s.repos.Floor.GetByName(ctx, in.Name)
		absent, err := checkAbsent(err)
		if err != nil {
			return nil, fmt.Errorf("check floor name: %w", err)
		}
		if !absent {
			return nil, conflictErr("floor", "name", in.Name)
		}
	}

	floor.Name = in.Name
	floor.Description = in.Description
	if err := s.repos.Floor.Save(ctx, floor); err != nil {
		if isDuplicate(err) {
			return nil, conflictErr("floor", "name", in.Name)
		}
		return nil, fmt.Errorf("update floor: %w", err)
	}
	return floor, nil
}

// DeleteFloor 删除平面图。级联删除区域是显式两步：先删区域再删平面图，
// 二者处于同一请求事务中，保证原子性。
func (s *MutationService) DeleteFloor(ctx context.Context, id uint) error {
	floor, err := s.repos.Floor.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "floor", id)
	}
	if err := s.repos.FloorZone.DeleteByFloor(ctx, id); err != nil {
		return fmt.Errorf("delete floor zones: %w", err)
	}
	if err := s.repos.Floor.Delete(ctx, floor); err != nil {
		return fmt.Errorf("delete floor: %w", err)
	}
	return nil
}

// ---- FloorZone ----

func (s *MutationService) CreateFloorZone(ctx context.Context, in FloorZoneInput) (*entity.FloorZone, error) {
	if _, err := s.repos.Floor.GetByID(ctx, in.FloorID); err != nil {
		return nil, asNotFound(err, "floor", in.FloorID)
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}
	if in.WorkCenterID != nil {
		if _, err := s.repos.WorkCenter.GetByID(ctx, *in.WorkCenterID); err != nil {
			return nil, asNotFound(err, "work center", *in.WorkCenterID)
		}
	}

	zone := &entity.FloorZone{
		FloorID:      in.FloorID,
		Name:         in.Name,
		ZoneType:     in.ZoneType,
		DepartmentID: in.DepartmentID,
		WorkCenterID: in.WorkCenterID,
		Polygon:      in.Polygon,
	}
	if err := s.repos.FloorZone.Create(ctx, zone); err != nil {
		return nil, fmt.Errorf("create floor zone: %w", err)
	}
	return zone, nil
}

func (s *MutationService) UpdateFloorZone(ctx context.Context, id uint, in FloorZoneInput) (*entity.FloorZone, error) {
	zone, err := s.repos.FloorZone.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "floor zone", id)
	}
	if in.FloorID != zone.FloorID {
		if _, err := s.repos.Floor.GetByID(ctx, in.FloorID); err != nil {
			return nil, asNotFound(err, "floor", in.FloorID)
		}
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}
	if in.WorkCenterID != nil {
		if _, err := s.repos.WorkCenter.GetByID(ctx, *in.WorkCenterID); err != nil {
			return nil, asNotFound(err, "work center", *in.WorkCenterID)
		}
	}

	zone.FloorID = in.FloorID
	zone.Name = in.Name
	zone.ZoneType = in.ZoneType
	zone.DepartmentID = in.DepartmentID
	zone.WorkCenterID = in.WorkCenterID
	zone.Polygon = in.Polygon
	if err := s.repos.FloorZone.Save(ctx, zone); err != nil {
		return nil, fmt.Errorf("update floor zone: %w", err)
	}
	return zone, nil
}

func (s *MutationService) DeleteFloorZone(ctx context.Context, id uint) error {
	zone, err := s.repos.FloorZone.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "floor zone", id)
	}
	if err := s.repos.FloorZone.Delete(ctx, zone); err != nil {
		return fmt.Errorf("delete floor zone: %w", err)
	}
	return nil
}
