package entity

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestUser_ColumnsMatchMigration(t *testing.T) {
	// Arrange: колонки таблицы users из 000001_init_schema.up.sql
	migrated := map[string]bool{
		"id":         true,
		"username":   true,
		"email":      true,
		"password":   true,
		"country":    true,
		"role":       true,
		"created_at": true,
		"updated_at": true,
	}

	// Act: разбираем GORM-схему сущности без подключения к БД
	sch, err := schema.Parse(&User{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	// Assert: сущность не должна объявлять колонок, которых нет в миграции,
	// иначе Save/Updates упадет на "column does not exist"
	assert.Len(t, sch.DBNames, len(migrated))
	for _, name := range sch.DBNames {
		assert.True(t, migrated[name], "колонка %s отсутствует в миграции users", name)
	}
}

func TestUser_BeforeSave_HashesPlainPassword(t *testing.T) {
	// Arrange
	user := &User{
		Username: "director",
		Email:    "director@example.com",
		Password: "correct-horse-battery",
	}

	// Act
	require.NoError(t, user.BeforeSave(nil))

	// Assert: пароль захеширован и проверяется
	assert.True(t, strings.HasPrefix(user.Password, "$2"), "пароль должен стать bcrypt-хешем")
	assert.True(t, user.CheckPassword("correct-horse-battery"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_BeforeSave_DoesNotRehash(t *testing.T) {
	// Arrange: пароль уже является bcrypt-хешем
	user := &User{Email: "judge@example.com", Password: "plain"}
	require.NoError(t, user.BeforeSave(nil))
	hashed := user.Password

	// Act: повторное сохранение
	require.NoError(t, user.BeforeSave(nil))

	// Assert
	assert.Equal(t, hashed, user.Password, "хеш не должен хешироваться повторно")
}
