package suppliers

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrNameRequired     = errors.New("supplier name is required")
	ErrTaxIDRequired    = errors.New("tax id is required")
	ErrTaxIDTaken       = errors.New("tax id already registered")
)

type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

func (s *SupplierService) Create(ctx context.Context, req *CreateSupplierRequest) (*Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.TaxID) == "" {
		return nil, ErrTaxIDRequired
	}

	var existing Supplier
	if err := s.db.WithContext(ctx).Where("tax_id = ?", req.TaxID).First(&existing).Error; err == nil {
		return nil, ErrTaxIDTaken
	}

	supplier := Supplier{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		TaxID:   strings.TrimSpace(req.TaxID),
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  true,
	}
	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *SupplierService) List(ctx context.Context, page, limit int, search string) (*SupplierListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Supplier{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(tax_id) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []Supplier
	if err := query.Order("name").Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &SupplierListResponse{
		Data:       items,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	var supplier Supplier
	if err := s.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req *UpdateSupplierRequest) (*Supplier, error) {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		supplier.Name = strings.TrimSpace(*req.Name)
	}
	if req.TaxID != nil {
		if strings.TrimSpace(*req.TaxID) == "" {
			return nil, ErrTaxIDRequired
		}
		var other Supplier
		if err := s.db.WithContext(ctx).Where("tax_id = ? AND id <> ?", *req.TaxID, id).First(&other).Error; err == nil {
			return nil, ErrTaxIDTaken
		}
		supplier.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Active != nil {
		supplier.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
