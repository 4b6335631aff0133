package machinery

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMachineNotFound  = errors.New("machine not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrCodeRequired     = errors.New("machine code is required")
	ErrNameRequired     = errors.New("machine name is required")
	ErrCodeTaken        = errors.New("machine code already exists")
	ErrKindRequired     = errors.New("document kind and title are required")
	ErrIssuedRequired   = errors.New("document issue date is required")
)

type MachineService struct {
	db *gorm.DB
}

func NewMachineService(db *gorm.DB) *MachineService {
	return &MachineService{db: db}
}

func (s *MachineService) Create(ctx context.Context, req *CreateMachineRequest) (*Machine, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return nil, ErrCodeRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	var existing Machine
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&existing).Error; err == nil {
		return nil, ErrCodeTaken
	}

	machine := Machine{
		ID:            uuid.New(),
		Code:          code,
		Name:          name,
		Category:      req.Category,
		AcquisitionAt: req.AcquisitionAt,
		Active:        true,
	}
	if err := s.db.WithContext(ctx).Create(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

func (s *MachineService) List(ctx context.Context, activeOnly bool) ([]Machine, error) {
	query := s.db.WithContext(ctx).Order("code")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var items []Machine
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MachineService) Get(ctx context.Context, id uuid.UUID) (*Machine, error) {
	var machine Machine
	if err := s.db.WithContext(ctx).First(&machine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}
	return &machine, nil
}

func (s *MachineService) Update(ctx context.Context, id uuid.UUID, req *UpdateMachineRequest) (*Machine, error) {
	machine, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return nil, ErrCodeRequired
		}
		var other Machine
		if err := s.db.WithContext(ctx).Where("code = ? AND id <> ?", code, id).First(&other).Error; err == nil {
			return nil, ErrCodeTaken
		}
		machine.Code = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		machine.Name = name
	}
	if req.Category != nil {
		machine.Category = *req.Category
	}
	if req.Active != nil {
		machine.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(machine).Error; err != nil {
		return nil, err
	}
	return machine, nil
}

func (s *MachineService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Machine{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMachineNotFound
	}
	return nil
}

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

func (s *DocumentService) Add(ctx context.Context, machineID uuid.UUID, req *AddDocumentRequest) (*MachineDocument, error) {
	if strings.TrimSpace(req.Kind) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, ErrKindRequired
	}
	if req.IssuedAt.IsZero() {
		return nil, ErrIssuedRequired
	}

	var machine Machine
	if err := s.db.WithContext(ctx).First(&machine, "id = ?", machineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}

	doc := MachineDocument{
		ID:        uuid.New(),
		MachineID: machineID,
		Kind:      strings.TrimSpace(req.Kind),
		Title:     strings.TrimSpace(req.Title),
		IssuedAt:  req.IssuedAt,
		ExpiresAt: req.ExpiresAt,
	}
	if len(req.Metadata) > 0 {
		b, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, err
		}
		doc.Metadata = datatypes.JSON(b)
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) ListByMachine(ctx context.Context, machineID uuid.UUID) ([]MachineDocument, error) {
	var docs []MachineDocument
	err := s.db.WithContext(ctx).
		Where("machine_id = ?", machineID).
		Order("issued_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Expiring returns documents whose expiry falls inside the window starting
// now. Documents without an expiry date are excluded.
func (s *DocumentService) Expiring(ctx context.Context, within time.Duration) ([]MachineDocument, error) {
	now := time.Now()
	cutoff := now.Add(within)
	var docs []MachineDocument
	err := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at >= ? AND expires_at <= ?", now, cutoff).
		Order("expires_at").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&MachineDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
