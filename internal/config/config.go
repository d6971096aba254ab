package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/handyzentrum/shopdocs/internal/model"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	// AccessSecret enables bearer-token auth on the API when set. A
	// single-operator deployment bound to localhost runs open.
	AccessSecret string
}

type PathsConfig struct {
	// DataDir holds generated receipts and the register database.
	DataDir string
	// ContractsDir holds generated contract PDFs and the sequence counter.
	ContractsDir string
	LedgerPath   string
	CounterPath  string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Paths       PathsConfig
	Company     model.Company
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Path: v.GetString("DB_PATH"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Paths: PathsConfig{
			DataDir:      v.GetString("DATA_DIR"),
			ContractsDir: v.GetString("CONTRACTS_DIR"),
			LedgerPath:   v.GetString("LEDGER_PATH"),
			CounterPath:  v.GetString("COUNTER_PATH"),
		},
		Company: model.Company{
			Name:       v.GetString("COMPANY_NAME"),
			Street:     v.GetString("COMPANY_STREET"),
			PostalCity: v.GetString("COMPANY_POSTAL_CITY"),
			City:       v.GetString("COMPANY_CITY"),
			Website:    v.GetString("COMPANY_WEBSITE"),
			Phone:      v.GetString("COMPANY_PHONE"),
			Email:      v.GetString("COMPANY_EMAIL"),
		},
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "127.0.0.1"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = "data"
	}
	if cfg.Paths.ContractsDir == "" {
		cfg.Paths.ContractsDir = "contracts"
	}
	if cfg.Paths.LedgerPath == "" {
		cfg.Paths.LedgerPath = "contracts.csv"
	}
	if cfg.Paths.CounterPath == "" {
		cfg.Paths.CounterPath = filepath.Join(cfg.Paths.ContractsDir, "last_contract_number.json")
	}
	if cfg.DB.Path == "" {
		cfg.DB.Path = filepath.Join(cfg.Paths.DataDir, "contracts.db")
	}

	if cfg.Company.Name == "" {
		cfg.Company.Name = "Myers International GmbH"
	}
	if cfg.Company.Street == "" {
		cfg.Company.Street = "Karl-Marx-Str. 62"
	}
	if cfg.Company.PostalCity == "" {
		cfg.Company.PostalCity = "12043 Berlin"
	}
	if cfg.Company.City == "" {
		cfg.Company.City = "Berlin"
	}
	if cfg.Company.Website == "" {
		cfg.Company.Website = "www.myers-international.com"
	}
	if cfg.Company.Phone == "" {
		cfg.Company.Phone = "123456789"
	}
	if cfg.Company.Email == "" {
		cfg.Company.Email = "handyzentrum62@gmail.com"
	}
}
