package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// Config хранит все настройки приложения
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Evaluation EvaluationConfig
	Ranking    RankingConfig
	Email      EmailConfig
	CORS       CORSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// EvaluationConfig содержит пороги физической оценки и веса финальной рубрики.
// Пороги намеренно вынесены в конфигурацию: в документации источника правил
// встречаются расходящиеся значения (например, влажность 3.5–8.0% против
// 5.5–8.5%), поэтому точные границы подтверждаются владельцем правил и
// задаются здесь, а не в коде.
type EvaluationConfig struct {
	Physical     PhysicalThresholds             `mapstructure:"physical"`
	FinalWeights map[string]entity.FinalWeights `mapstructure:"final_weights"`
}

// PhysicalThresholds содержит пороги правил физической оценки (проценты и штуки)
type PhysicalThresholds struct {
	HumidityMin       float64 `mapstructure:"humidity_min"`
	HumidityMax       float64 `mapstructure:"humidity_max"`
	BrokenGrainsMax   float64 `mapstructure:"broken_grains_max"`
	FlatGrainsWarn    float64 `mapstructure:"flat_grains_warn"`
	FermentedMin      float64 `mapstructure:"fermented_min"`
	PurpleMax         float64 `mapstructure:"purple_max"`
	SlatyMax          float64 `mapstructure:"slaty_max"`
	InternalMoldMax   float64 `mapstructure:"internal_mold_max"`
	OverFermentedMax  float64 `mapstructure:"over_fermented_max"`
	AffectedGrainsMax int     `mapstructure:"affected_grains_max"`
}

// RankingConfig содержит настройки рейтинга
type RankingConfig struct {
	TopN int `mapstructure:"top_n"`
}

// EmailConfig содержит настройки почтовых уведомлений
type EmailConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// DefaultPhysicalThresholds возвращает пороги по умолчанию.
// Значения влажности соответствуют варианту 3.5–8.0% из документации.
func DefaultPhysicalThresholds() PhysicalThresholds {
	return PhysicalThresholds{
		HumidityMin:       3.5,
		HumidityMax:       8.0,
		BrokenGrainsMax:   10.0,
		FlatGrainsWarn:    15.0,
		FermentedMin:      60.0,
		PurpleMax:         10.0,
		SlatyMax:          10.0,
		InternalMoldMax:   5.0,
		OverFermentedMax:  10.0,
		AffectedGrainsMax: 0,
	}
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("jwt.expirationHrs", 24)
	vip.SetDefault("ranking.top_n", 10)
	vip.SetDefault("email.enabled", false)

	def := DefaultPhysicalThresholds()
	vip.SetDefault("evaluation.physical.humidity_min", def.HumidityMin)
	vip.SetDefault("evaluation.physical.humidity_max", def.HumidityMax)
	vip.SetDefault("evaluation.physical.broken_grains_max", def.BrokenGrainsMax)
	vip.SetDefault("evaluation.physical.flat_grains_warn", def.FlatGrainsWarn)
	vip.SetDefault("evaluation.physical.fermented_min", def.FermentedMin)
	vip.SetDefault("evaluation.physical.purple_max", def.PurpleMax)
	vip.SetDefault("evaluation.physical.slaty_max", def.SlatyMax)
	vip.SetDefault("evaluation.physical.internal_mold_max", def.InternalMoldMax)
	vip.SetDefault("evaluation.physical.over_fermented_max", def.OverFermentedMax)
	vip.SetDefault("evaluation.physical.affected_grains_max", def.AffectedGrainsMax)

	// Веса финальной рубрики по видам продукции (сумма = 1)
	vip.SetDefault("evaluation.final_weights.cacao_bean", map[string]interface{}{
		"appearance": 0.15, "aroma": 0.30, "texture": 0.10, "flavor": 0.30, "aftertaste": 0.15,
	})
	vip.SetDefault("evaluation.final_weights.liquor", map[string]interface{}{
		"appearance": 0.10, "aroma": 0.25, "texture": 0.15, "flavor": 0.35, "aftertaste": 0.15,
	})
	vip.SetDefault("evaluation.final_weights.chocolate", map[string]interface{}{
		"appearance": 0.10, "aroma": 0.20, "texture": 0.20, "flavor": 0.35, "aftertaste": 0.15,
	})

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("email.enabled", "EMAIL_ENABLED")
	vip.BindEnv("email.api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")

	// 3. Читаем файл конфигурации (не страшно, если его нет: есть BindEnv и умолчания)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
			}
		}
	}

	// 4. Разбираем в структуру
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required (set JWT_SECRET)")
	}

	return &cfg, nil
}
