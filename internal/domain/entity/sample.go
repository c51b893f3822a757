package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Константы статусов образца. Жизненный цикл движется только вперед:
// draft -> submitted -> received -> physical_evaluation -> approved|disqualified -> evaluated
const (
	SampleStatusDraft              = "draft"
	SampleStatusSubmitted          = "submitted"
	SampleStatusReceived           = "received"
	SampleStatusPhysicalEvaluation = "physical_evaluation"
	SampleStatusApproved           = "approved"
	SampleStatusDisqualified       = "disqualified"
	SampleStatusEvaluated          = "evaluated"
)

// Виды конкурсной продукции
const (
	SampleKindBean      = "cacao_bean"
	SampleKindLiquor    = "liquor"
	SampleKindChocolate = "chocolate"
)

// sampleTransitions описывает допустимые ребра графа переходов.
// Обратных переходов нет: disqualified и evaluated — терминальные статусы.
var sampleTransitions = map[string][]string{
	SampleStatusDraft:              {SampleStatusSubmitted},
	SampleStatusSubmitted:          {SampleStatusReceived},
	SampleStatusReceived:           {SampleStatusPhysicalEvaluation},
	SampleStatusPhysicalEvaluation: {SampleStatusApproved, SampleStatusDisqualified},
	SampleStatusApproved:           {SampleStatusEvaluated},
	SampleStatusDisqualified:       {},
	SampleStatusEvaluated:          {},
}

// Sample представляет конкурсный образец
type Sample struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ContestID    uint           `gorm:"not null;index" json:"contest_id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"` // участник-владелец
	Kind         string         `gorm:"size:20;not null;default:'cacao_bean'" json:"kind"`
	Name         string         `gorm:"size:100;not null;default:''" json:"name"`
	TrackingCode *string        `gorm:"size:40;uniqueIndex" json:"tracking_code,omitempty"`
	Status       string         `gorm:"size:30;not null;default:'draft';index" json:"status"`
	Details      datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Sample) TableName() string {
	return "samples"
}

// CanTransition проверяет, допустим ли переход из текущего статуса в целевой
func (s *Sample) CanTransition(target string) bool {
	for _, next := range sampleTransitions[s.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal проверяет, достиг ли образец терминального статуса
func (s *Sample) IsTerminal() bool {
	return len(sampleTransitions[s.Status]) == 0 && s.Status != ""
}

// IsDraft проверяет, находится ли образец в черновике
func (s *Sample) IsDraft() bool {
	return s.Status == SampleStatusDraft
}

// TrackingCodeValue возвращает код отслеживания или пустую строку,
// пока код черновику не присвоен. Колонка остается NULL до отправки,
// чтобы несколько черновиков не сталкивались на уникальном индексе.
func (s *Sample) TrackingCodeValue() string {
	if s.TrackingCode == nil {
		return ""
	}
	return *s.TrackingCode
}

// ValidateForSubmit проверяет, что образец готов покинуть черновик.
// Черновик может быть заполнен частично; любой не-draft образец обязан
// иметь код отслеживания, название и валидные данные своего вида продукции.
func (s *Sample) ValidateForSubmit() error {
	if strings.TrimSpace(s.TrackingCodeValue()) == "" {
		return fmt.Errorf("tracking code is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("sample name is required")
	}
	details, err := s.DecodeDetails()
	if err != nil {
		return err
	}
	return details.Validate()
}

// SampleDetails — общий контракт для типизированных данных вида продукции
type SampleDetails interface {
	Validate() error
}

// BeanDetails — обязательные поля для образца какао-бобов
type BeanDetails struct {
	Variety          string `json:"variety"`
	HarvestYear      int    `json:"harvest_year"`
	FermentationDays int    `json:"fermentation_days"`
	DryingMethod     string `json:"drying_method"`
	BatchWeightKg    int    `json:"batch_weight_kg"`
}

func (d BeanDetails) Validate() error {
	if strings.TrimSpace(d.Variety) == "" {
		return fmt.Errorf("bean variety is required")
	}
	if d.HarvestYear < 2000 {
		return fmt.Errorf("harvest year is required")
	}
	if d.FermentationDays <= 0 {
		return fmt.Errorf("fermentation days must be positive")
	}
	if strings.TrimSpace(d.DryingMethod) == "" {
		return fmt.Errorf("drying method is required")
	}
	return nil
}

// LiquorDetails — обязательные поля для образца какао-ликера
type LiquorDetails struct {
	BeanOrigin    string `json:"bean_origin"`
	ProcessMethod string `json:"process_method"`
	RoastProfile  string `json:"roast_profile"`
}

func (d LiquorDetails) Validate() error {
	if strings.TrimSpace(d.BeanOrigin) == "" {
		return fmt.Errorf("bean origin is required")
	}
	if strings.TrimSpace(d.ProcessMethod) == "" {
		return fmt.Errorf("process method is required")
	}
	return nil
}

// ChocolateDetails — обязательные поля для образца шоколада
type ChocolateDetails struct {
	CocoaPercent int      `json:"cocoa_percent"`
	BeanOrigin   string   `json:"bean_origin"`
	Ingredients  []string `json:"ingredients"`
}

func (d ChocolateDetails) Validate() error {
	if d.CocoaPercent <= 0 || d.CocoaPercent > 100 {
		return fmt.Errorf("cocoa percent must be in (0, 100]")
	}
	if strings.TrimSpace(d.BeanOrigin) == "" {
		return fmt.Errorf("bean origin is required")
	}
	if len(d.Ingredients) == 0 {
		return fmt.Errorf("ingredients list is required")
	}
	return nil
}

// DecodeDetails разбирает поле Details в типизированную структуру по виду продукции
func (s *Sample) DecodeDetails() (SampleDetails, error) {
	raw := []byte(s.Details)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch s.Kind {
	case SampleKindBean:
		var d BeanDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid bean details: %w", err)
		}
		return d, nil
	case SampleKindLiquor:
		var d LiquorDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid liquor details: %w", err)
		}
		return d, nil
	case SampleKindChocolate:
		var d ChocolateDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid chocolate details: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown sample kind: %s", s.Kind)
	}
}
