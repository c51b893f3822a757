package entity

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm/schema"
)

func TestSample_CanTransition_ForwardWalk(t *testing.T) {
	// Arrange: полный прямой путь жизненного цикла
	walk := []string{
		SampleStatusDraft,
		SampleStatusSubmitted,
		SampleStatusReceived,
		SampleStatusPhysicalEvaluation,
		SampleStatusApproved,
		SampleStatusEvaluated,
	}
	sample := &Sample{Status: walk[0]}

	// Act & Assert: каждый шаг вперед допустим
	for i := 1; i < len(walk); i++ {
		assert.True(t, sample.CanTransition(walk[i]),
			"переход %s -> %s должен быть допустим", sample.Status, walk[i])
		sample.Status = walk[i]
	}
}

func TestSample_CanTransition_NoBackwardEdges(t *testing.T) {
	// Arrange
	sample := &Sample{Status: SampleStatusApproved}

	// Act & Assert: обратных переходов нет
	assert.False(t, sample.CanTransition(SampleStatusDraft), "возврат в draft недопустим")
	assert.False(t, sample.CanTransition(SampleStatusSubmitted), "возврат в submitted недопустим")
	assert.False(t, sample.CanTransition(SampleStatusReceived), "возврат в received недопустим")
	assert.False(t, sample.CanTransition(SampleStatusDisqualified),
		"approved не может стать disqualified")
}

func TestSample_CanTransition_SkippingStages(t *testing.T) {
	// Arrange
	sample := &Sample{Status: SampleStatusSubmitted}

	// Act & Assert: перепрыгивать стадии нельзя
	assert.False(t, sample.CanTransition(SampleStatusApproved),
		"submitted не может сразу стать approved")
	assert.False(t, sample.CanTransition(SampleStatusEvaluated),
		"submitted не может сразу стать evaluated")
}

func TestSample_IsTerminal(t *testing.T) {
	assert.True(t, (&Sample{Status: SampleStatusDisqualified}).IsTerminal(),
		"disqualified — терминальный статус")
	assert.True(t, (&Sample{Status: SampleStatusEvaluated}).IsTerminal(),
		"evaluated — терминальный статус")
	assert.False(t, (&Sample{Status: SampleStatusReceived}).IsTerminal(),
		"received — не терминальный статус")
}

func TestSample_TrackingCode_NullableForDrafts(t *testing.T) {
	// Arrange: разбираем GORM-схему без подключения к БД
	sch, err := schema.Parse(&Sample{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	field := sch.LookUpField("tracking_code")
	require.NotNil(t, field, "колонка tracking_code должна существовать")

	// Assert: у черновиков код отсутствует, и в колонку должен уходить
	// NULL, а не пустая строка — иначе второй черновик нарушит
	// уникальный индекс
	assert.Equal(t, reflect.Ptr, field.FieldType.Kind(),
		"tracking_code должен быть указателем, чтобы nil записывался как NULL")
	assert.False(t, field.NotNull, "tracking_code должен допускать NULL")

	first := &Sample{ContestID: 1, UserID: 1, Status: SampleStatusDraft}
	second := &Sample{ContestID: 1, UserID: 2, Status: SampleStatusDraft}
	assert.Nil(t, first.TrackingCode, "черновик создается без кода отслеживания")
	assert.Nil(t, second.TrackingCode, "второй черновик тоже без кода")
	assert.Empty(t, first.TrackingCodeValue())
}

func TestSample_ValidateForSubmit_DraftMayBeIncomplete(t *testing.T) {
	// Arrange: черновик без кода отслеживания и деталей
	sample := &Sample{
		Kind:   SampleKindBean,
		Status: SampleStatusDraft,
	}

	// Act
	err := sample.ValidateForSubmit()

	// Assert: валидация при выходе из draft должна провалиться
	require.Error(t, err, "неполный образец не может покинуть черновик")
}

func TestSample_ValidateForSubmit_BeanComplete(t *testing.T) {
	// Arrange
	code := "CC-2024-0001"
	sample := &Sample{
		Kind:         SampleKindBean,
		Name:         "Finca La Esperanza",
		TrackingCode: &code,
		Status:       SampleStatusDraft,
		Details: datatypes.JSON([]byte(`{
			"variety": "Trinitario",
			"harvest_year": 2024,
			"fermentation_days": 6,
			"drying_method": "sun",
			"batch_weight_kg": 25
		}`)),
	}

	// Act & Assert
	require.NoError(t, sample.ValidateForSubmit())
}

func TestSample_ValidateForSubmit_ChocolateMissingFields(t *testing.T) {
	// Arrange: шоколад без списка ингредиентов
	code := "CC-2024-0002"
	sample := &Sample{
		Kind:         SampleKindChocolate,
		Name:         "Dark 70",
		TrackingCode: &code,
		Details:      datatypes.JSON([]byte(`{"cocoa_percent": 70, "bean_origin": "Peru"}`)),
	}

	// Act
	err := sample.ValidateForSubmit()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingredients")
}

func TestSample_DecodeDetails_UnknownKind(t *testing.T) {
	// Arrange
	sample := &Sample{Kind: "coffee"}

	// Act
	_, err := sample.DecodeDetails()

	// Assert
	require.Error(t, err, "неизвестный вид продукции должен быть отвергнут")
}
