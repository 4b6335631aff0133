package quotations

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrQuotationNotFound  = errors.New("quotation not found")
	ErrNumberRequired     = errors.New("quotation number is required")
	ErrNumberTaken        = errors.New("quotation number already exists")
	ErrReferencesRequired = errors.New("supplier and cost center are required")
	ErrInvalidItems       = errors.New("line items must have positive quantity and price")
	ErrInvalidStatus      = errors.New("unknown quotation status")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrNotEditable        = errors.New("only draft quotations can be edited")
)

// allowedTransitions encodes the quotation lifecycle.
var allowedTransitions = map[string][]string{
	StatusDraft:    {StatusSent},
	StatusSent:     {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

type QuotationService struct {
	db *gorm.DB
}

func NewQuotationService(db *gorm.DB) *QuotationService {
	return &QuotationService{db: db}
}

func (s *QuotationService) Create(ctx context.Context, req *CreateQuotationRequest) (*Quotation, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, ErrNumberRequired
	}
	if req.SupplierID == uuid.Nil || req.CostCenterID == uuid.Nil {
		return nil, ErrReferencesRequired
	}

	total, itemsJSON, err := encodeItems(req.Items)
	if err != nil {
		return nil, err
	}

	var existing Quotation
	if err := s.db.WithContext(ctx).Where("number = ?", number).First(&existing).Error; err == nil {
		return nil, ErrNumberTaken
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	q := Quotation{
		ID:           uuid.New(),
		Number:       number,
		SupplierID:   req.SupplierID,
		CostCenterID: req.CostCenterID,
		Status:       StatusDraft,
		Currency:     currency,
		Total:        total,
		Items:        itemsJSON,
		Notes:        req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuotationService) List(ctx context.Context, page, limit int, status string, supplierID uuid.UUID) (*QuotationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Quotation{})
	if status != "" {
		if _, ok := allowedTransitions[status]; !ok {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}
	if supplierID != uuid.Nil {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []Quotation
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &QuotationListResponse{
		Data:       items,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *QuotationService) Get(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	var q Quotation
	if err := s.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuotationNotFound
		}
		return nil, err
	}
	return &q, nil
}

// Update edits line items and notes. Only draft quotations are editable.
func (s *QuotationService) Update(ctx context.Context, id uuid.UUID, req *UpdateQuotationRequest) (*Quotation, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status != StatusDraft {
		return nil, ErrNotEditable
	}

	if req.Items != nil {
		total, itemsJSON, err := encodeItems(*req.Items)
		if err != nil {
			return nil, err
		}
		q.Items = itemsJSON
		q.Total = total
	}
	if req.Notes != nil {
		q.Notes = *req.Notes
	}

	if err := s.db.WithContext(ctx).Save(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// Transition moves a quotation through its lifecycle, rejecting illegal jumps.
func (s *QuotationService) Transition(ctx context.Context, id uuid.UUID, target string) (*Quotation, error) {
	if _, ok := allowedTransitions[target]; !ok {
		return nil, ErrInvalidStatus
	}
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range allowedTransitions[q.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrIllegalTransition
	}

	if err := s.db.WithContext(ctx).Model(q).Update("status", target).Error; err != nil {
		return nil, err
	}
	q.Status = target
	return q, nil
}

func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Quotation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuotationNotFound
	}
	return nil
}

func encodeItems(items []LineItem) (float64, datatypes.JSON, error) {
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return 0, nil, ErrInvalidItems
		}
		total += item.Quantity * item.UnitPrice
	}
	if len(items) == 0 {
		return 0, nil, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return 0, nil, err
	}
	return total, datatypes.JSON(b), nil
}
