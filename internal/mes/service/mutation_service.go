package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"gorm.io/gorm"
)

// MutationService 组合各仓库执行写操作。每个操作按固定顺序执行：
// 自然键唯一性预检 → 外键存在性校验 → 默认值推导 → 落库。
// 并发写同一自然键时预检可能同时通过，落库阶段由存储层唯一约束兜底，
// 该失败同样转为ConflictError。
type MutationService struct {
	repos  *repository.Repositories
	events *ActivityPublisher
	policy config.PolicyConfig
}

func NewMutationService(repos *repository.Repositories, events *ActivityPublisher, policy config.PolicyConfig) *MutationService {
	return &MutationService{repos: repos, events: events, policy: policy}
}

// isDuplicate 识别存储层唯一约束冲突（gorm TranslateError 开启后统一为ErrDuplicatedKey）
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// checkAbsent 自然键预检：期望查无此行。命中返回false，查询失败返回错误。
func checkAbsent(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	return false, err
}

// ---- Department ----

func (s *MutationService) CreateDepartment(ctx context.Context, in DepartmentInput) (*entity.Department, error) {
	if in.Title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	_, err := s.repos.Department.GetByTitle(ctx, in.Title)
	absent, err := checkAbsent(err)
	if err != nil {
		return nil, fmt.Errorf("check department title: %w", err)
	}
	if !absent {
		return nil, conflictErr("department", "title", in.Title)
	}

	dept := &entity.Department{Title: in.Title, Description: in.Description}
	if err := s.repos.Department.Create(ctx, dept); err != nil {
		if isDuplicate(err) {
			return nil, conflictErr("department", "title", in.Title)
		}
		return nil, fmt.Errorf("create department: %w", err)
	}
	return dept, nil
}

func (s *MutationService) UpdateDepartment(ctx context.Context, id uint, in DepartmentInput) (*entity.Department, error) {
	if in.Title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	dept, err := s.repos.Department.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "department", id)
	}

	// 仅当标题变化时重查唯一性，避免与自身误判冲突
	if in.Title != dept.Title {
		_, err := s.repos.Department.GetByTitle(ctx, in.Title)
		absent, err := checkAbsent(err)
		if err != nil {
			return nil, fmt.Errorf("check department title: %w", err)
		}
		if !absent {
			return nil, conflictErr("department", "title", in.Title)
		}
	}

	dept.Title = in.Title
	dept.Description = in.Description
	if err := s.repos.Department.Save(ctx, dept); err != nil {
		if isDuplicate(err) {
			return nil, conflictErr("department", "title", in.Title)
		}
		return nil, fmt.Errorf("update department: %w", err)
	}
	return dept, nil
}

func (s *MutationService) DeleteDepartment(ctx context.Context, id uint) error {
	dept, err := s.repos.Department.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "department", id)
	}
	if err := s.repos.Department.Delete(ctx, dept); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}

// ---- User ----

func (s *MutationService) CreateUser(ctx context.Context, in UserInput) (*entity.User, error) {
	if in.Username == "" {
		return nil, validationErr("username", "must not be empty")
	}
	_, err := s.repos.User.GetByUsername(ctx, in.Username)
	absent, err := checkAbsent(err)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if !absent {
		return nil, conflictErr("user", "username", in.Username)
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	user := &entity.User{
		Username:     in.Username,
		DepartmentID: in.DepartmentID,
		Job:          in.Job,
		Time:         in.Time,
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, conflictErr("user", "username", in.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *MutationService) UpdateUser(ctx context.Context, id uint, in UserInput) (*entity.User, error) {
	if in.Username == "" {
		return nil, validationErr("username", "must not be empty")
	}
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "user", id)
	}

	if in.Username != user.Username {
		_, err := s.repos.User.GetByUsername(ctx, in.Username)
		absent, err := checkAbsent(err)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if !absent {
			return nil, conflictErr("user", "username", in.Username)
		}
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	user.Username = in.Username
	user.DepartmentID = in.DepartmentID
	user.Job = in.Job
	user.Time = in.Time
	if err := s.repos.User.Save(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, conflictErr("user", "username", in.Username)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *MutationService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "user", id)
	}
	if err := s.repos.User.Delete(ctx, user); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ---- Part ----

func (s *MutationService) CreatePart(ctx context.Context, in PartInput) (*entity.Part, error) {
	if in.Name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	part := &entity.Part{Name: in.Name, DepartmentID: in.DepartmentID}
	if err := s.repos.Part.Create(ctx, part); err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	return part, nil
}

func (s *MutationService) UpdatePart(ctx context.Context, id uint, in PartInput) (*entity.Part, error) {
	if in.Name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	part, err := s.repos.Part.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "part", id)
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	part.Name = in.Name
	part.DepartmentID = in.DepartmentID
	if err := s.repos.Part.Save(ctx, part); err != nil {
		return nil, fmt.Errorf("update part: %w", err)
	}
	return part, nil
}

func (s *MutationService) DeletePart(ctx context.Context, id uint) error {
	part, err := s.repos.Part.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "part", id)
	}
	if err := s.repos.Part.Delete(ctx, part); err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}

// ---- DefectCategory ----

func (s *MutationService) CreateDefectCategory(ctx context.Context, in DefectCategoryInput) (*entity.DefectCategory, error) {
	if in.Title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	if s.policy.UniqueDefectCategoryTitle {
		_, err := s.repos.DefectCategory.GetByTitle(ctx, in.Title)
		absent, err := checkAbsent(err)
		if err != nil {
			return nil, fmt.Errorf("check defect category title: %w", err)
		}
		if !absent {
			return nil, conflictErr("defect category", "title", in.Title)
		}
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	cat := &entity.DefectCategory{Title: in.Title, DepartmentID: in.DepartmentID}
	if err := s.repos.DefectCategory.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create defect category: %w", err)
	}
	return cat, nil
}

func (s *MutationService) UpdateDefectCategory(ctx context.Context, id uint, in DefectCategoryInput) (*entity.DefectCategory, error) {
	if in.Title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	cat, err := s.repos.DefectCategory.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "defect category", id)
	}
	if s.policy.UniqueDefectCategoryTitle && in.Title != cat.Title {
		_, err := s.repos.DefectCategory.GetByTitle(ctx, in.Title)
		absent, err := checkAbsent(err)
		if err != nil {
			return nil, fmt.Errorf("check defect category title: %w", err)
		}
		if !absent {
			return nil, conflictErr("defect category", "title", in.Title)
		}
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	cat.Title = in.Title
	cat.DepartmentID = in.DepartmentID
	if err := s.repos.DefectCategory.Save(ctx, cat); err != nil {
		return nil, fmt.Errorf("update defect category: %w", err)
	}
	return cat, nil
}

func (s *MutationService) DeleteDefectCategory(ctx context.Context, id uint) error {
	cat, err := s.repos.DefectCategory.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "defect category", id)
	}
	if err := s.repos.DefectCategory.Delete(ctx, cat); err != nil {
		return fmt.Errorf("delete defect category: %w", err)
	}
	return nil
}

// ---- Defect ----

func (s *MutationService) CreateDefect(ctx context.Context, in DefectInput) (*entity.Defect, error) {
	if _, err := s.repos.Part.GetByID(ctx, in.PartID); err != nil {
		return nil, asNotFound(err, "part", in.PartID)
	}
	if _, err := s.repos.DefectCategory.GetByID(ctx, in.DefectCategoryID); err != nil {
		return nil, asNotFound(err, "defect category", in.DefectCategoryID)
	}

	defect := &entity.Defect{
		Title:            in.Title,
		Description:      in.Description,
		PartID:           in.PartID,
		DefectCategoryID: in.DefectCategoryID,
	}
	if err := s.repos.Defect.Create(ctx, defect); err != nil {
		return nil, fmt.Errorf("create defect: %w", err)
	}
	return defect, nil
}

func (s *MutationService) UpdateDefect(ctx context.Context, id uint, in DefectInput) (*entity.Defect, error) {
	defect, err := s.repos.Defect.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "defect", id)
	}
	if _, err := s.repos.Part.GetByID(ctx, in.PartID); err != nil {
		return nil, asNotFound(err, "part", in.PartID)
	}
	if _, err := s.repos.DefectCategory.GetByID(ctx, in.DefectCategoryID); err != nil {
		return nil, asNotFound(err, "defect category", in.DefectCategoryID)
	}

	defect.Title = in.Title
	defect.Description = in.Description
	defect.PartID = in.PartID
	defect.DefectCategoryID = in.DefectCategoryID
	if err := s.repos.Defect.Save(ctx, defect); err != nil {
		return nil, fmt.Errorf("update defect: %w", err)
	}
	return defect, nil
}

func (s *MutationService) DeleteDefect(ctx context.Context, id uint) error {
	defect, err := s.repos.Defect.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "defect", id)
	}
	if err := s.repos.Defect.Delete(ctx, defect); err != nil {
		return fmt.Errorf("delete defect: %w", err)
	}
	return nil
}

// ---- Quality ----

func (s *MutationService) CreateQuality(ctx context.Context, in QualityInput) (*entity.Quality, error) {
	if in.PassFail == nil {
		return nil, validationErr("pass_fail", "is required")
	}
	if in.DefectCount < 0 {
		return nil, validationErr("defect_count", "must not be negative")
	}
	if _, err := s.repos.Part.GetByID(ctx, in.PartID); err != nil {
		return nil, asNotFound(err, "part", in.PartID)
	}

	q := &entity.Quality{
		PassFail:    *in.PassFail,
		DefectCount: in.DefectCount,
		PartID:      in.PartID,
	}
	if err := s.repos.Quality.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quality: %w", err)
	}
	return q, nil
}

func (s *MutationService) UpdateQuality(ctx context.Context, id uint, in QualityInput) (*entity.Quality, error) {
	q, err := s.repos.Quality.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "quality", id)
	}
	if in.PassFail == nil {
		return nil, validationErr("pass_fail", "is required")
	}
	if in.DefectCount < 0 {
		return nil, validationErr("defect_count", "must not be negative")
	}
	if _, err := s.repos.Part.GetByID(ctx, in.PartID); err != nil {
		return nil, asNotFound(err, "part", in.PartID)
	}

	q.PassFail = *in.PassFail
	q.DefectCount = in.DefectCount
	q.PartID = in.PartID
	if err := s.repos.Quality.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("update quality: %w", err)
	}
	return q, nil
}

func (s *MutationService) DeleteQuality(ctx context.Context, id uint) error {
	q, err := s.repos.Quality.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "quality", id)
	}
	if err := s.repos.Quality.Delete(ctx, q); err != nil {
		return fmt.Errorf("delete quality: %w", err)
	}
	return nil
}
