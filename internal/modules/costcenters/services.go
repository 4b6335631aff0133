package costcenters

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCostCenterNotFound = errors.New("cost center not found")
	ErrCodeRequired       = errors.New("cost center code is required")
	ErrNameRequired       = errors.New("cost center name is required")
	ErrCodeTaken          = errors.New("cost center code already exists")
	ErrNegativeBudget     = errors.New("budget cannot be negative")
)

type CostCenterService struct {
	db *gorm.DB
}

func NewCostCenterService(db *gorm.DB) *CostCenterService {
	return &CostCenterService{db: db}
}

func (s *CostCenterService) Create(ctx context.Context, req *CreateCostCenterRequest) (*CostCenter, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Budget < 0 {
		return nil, ErrNegativeBudget
	}

	var existing CostCenter
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&existing).Error; err == nil {
		return nil, ErrCodeTaken
	}

	cc := CostCenter{
		ID:          uuid.New(),
		Code:        code,
		Name:        name,
		Description: req.Description,
		Budget:      req.Budget,
		Active:      true,
	}
	if err := s.db.WithContext(ctx).Create(&cc).Error; err != nil {
		return nil, err
	}
	return &cc, nil
}

func (s *CostCenterService) List(ctx context.Context, activeOnly bool) ([]CostCenter, error) {
	query := s.db.WithContext(ctx).Order("code")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var items []CostCenter
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CostCenterService) Get(ctx context.Context, id uuid.UUID) (*CostCenter, error) {
	var cc CostCenter
	if err := s.db.WithContext(ctx).First(&cc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostCenterNotFound
		}
		return nil, err
	}
	return &cc, nil
}

func (s *CostCenterService) Update(ctx context.Context, id uuid.UUID, req *UpdateCostCenterRequest) (*CostCenter, error) {
	cc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, ErrCodeRequired
		}
		var other CostCenter
		if err := s.db.WithContext(ctx).Where("code = ? AND id <> ?", code, id).First(&other).Error; err == nil {
			return nil, ErrCodeTaken
		}
		cc.Code = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		cc.Name = name
	}
	if req.Description != nil {
		cc.Description = *req.Description
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			return nil, ErrNegativeBudget
		}
		cc.Budget = *req.Budget
	}
	if req.Active != nil {
		cc.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(cc).Error; err != nil {
		return nil, err
	}
	return cc, nil
}

func (s *CostCenterService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&CostCenter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCostCenterNotFound
	}
	return nil
}
