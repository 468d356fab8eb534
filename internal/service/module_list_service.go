package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/model"
	"github.com/fantaAstic/cs310-final/internal/repository"
)

var (
	ErrListForbidden = errors.New("仅教师可维护该列表")
	ErrListReadOnly  = errors.New("推荐列表只能由推荐引擎生成")
)

// ModuleListService 学生/教师模块列表业务接口
// 调用方已通过 model.ParseListType 校验 listType
type ModuleListService interface {
	List(ctx context.Context, userID, role string, listType model.ListType) (*dto.ModuleListResponse, error)
	Count(ctx context.Context, userID, role string, listType model.ListType) (*dto.ModuleListCountResponse, error)
	Add(ctx context.Context, userID, role string, listType model.ListType, moduleName string) (*dto.ModuleListChangeResponse, error)
	Remove(ctx context.Context, userID, role string, listType model.ListType, moduleName string) (*dto.ModuleListChangeResponse, error)
	Clear(ctx context.Context, userID, role string, listType model.ListType) (*dto.ModuleListCountResponse, error)
}

type moduleListService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewModuleListService 创建 ModuleListService 实例
func NewModuleListService(repo *repository.Repository, logger *zap.Logger) ModuleListService {
	return &moduleListService{repo: repo, logger: logger}
}

func checkListAccess(role string, listType model.ListType) error {
	if listType.TeacherOnly() && role != model.RoleTeacher {
		return ErrListForbidden
	}
	return nil
}

func (s *moduleListService) List(ctx context.Context, userID, role string, listType model.ListType) (*dto.ModuleListResponse, error) {
	if err := checkListAccess(role, listType); err != nil {
		return nil, err
	}
	names, err := s.repo.UserModule.ListNames(ctx, userID, listType)
	if err != nil {
		s.logger.Error("查询模块列表失败", zap.String("user_id", userID), zap.String("list", string(listType)), zap.Error(err))
		return nil, err
	}
	return &dto.ModuleListResponse{ListType: string(listType), Modules: names, Count: len(names)}, nil
}

func (s *moduleListService) Count(ctx context.Context, userID, role string, listType model.ListType) (*dto.ModuleListCountResponse, error) {
	if err := checkListAccess(role, listType); err != nil {
		return nil, err
	}
	n, err := s.repo.UserModule.Count(ctx, userID, listType)
	if err != nil {
		s.logger.Error("统计模块列表失败", zap.String("user_id", userID), zap.String("list", string(listType)), zap.Error(err))
		return nil, err
	}
	return &dto.ModuleListCountResponse{ListType: string(listType), Count: n}, nil
}

func (s *moduleListService) Add(ctx context.Context, userID, role string, listType model.ListType, moduleName string) (*dto.ModuleListChangeResponse, error) {
	if listType == model.ListRecommended {
		return nil, ErrListReadOnly
	}
	if err := checkListAccess(role, listType); err != nil {
		return nil, err
	}

	if _, err := s.repo.Module.GetByName(ctx, moduleName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		s.logger.Error("查询模块失败", zap.String("module", moduleName), zap.Error(err))
		return nil, err
	}

	added, err := s.repo.UserModule.Add(ctx, userID, listType, moduleName)
	if err != nil {
		s.logger.Error("添加模块到列表失败", zap.String("user_id", userID), zap.String("list", string(listType)), zap.Error(err))
		return nil, err
	}
	return &dto.ModuleListChangeResponse{ListType: string(listType), ModuleName: moduleName, Changed: added}, nil
}

func (s *moduleListService) Remove(ctx context.Context, userID, role string, listType model.ListType, moduleName string) (*dto.ModuleListChangeResponse, error) {
	if err := checkListAccess(role, listType); err != nil {
		return nil, err
	}
	removed, err := s.repo.UserModule.Remove(ctx, userID, listType, moduleName)
	if err != nil {
		s.logger.Error("从列表移除模块失败", zap.String("user_id", userID), zap.String("list", string(listType)), zap.Error(err))
		return nil, err
	}
	return &dto.ModuleListChangeResponse{ListType: string(listType), ModuleName: moduleName, Changed: removed}, nil
}

func (s *moduleListService) Clear(ctx context.Context, userID, role string, listType model.ListType) (*dto.ModuleListCountResponse, error) {
	if err := checkListAccess(role, listType); err != nil {
		return nil, err
	}
	n, err := s.repo.UserModule.Clear(ctx, userID, listType)
	if err != nil {
		s.logger.Error("清空模块列表失败", zap.String("user_id", userID), zap.String("list", string(listType)), zap.Error(err))
		return nil, err
	}
	return &dto.ModuleListCountResponse{ListType: string(listType), Count: n}, nil
}
