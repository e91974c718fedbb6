package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath    string `yaml:"db_path"`
	DataDir   string `yaml:"data_dir"`
	OutputDir string `yaml:"output_dir"`
	ExcelDir  string `yaml:"excel_dir"`

	AnalysisDate  string  `yaml:"analysis_date"` // YYYY-MM-DD; empty = max txn date + 1
	TopPercent    int     `yaml:"top_percent"`
	ScoreBins     int     `yaml:"score_bins"`
	CLVMultiplier float64 `yaml:"clv_multiplier"`
	MaxInvalidPct float64 `yaml:"max_invalid_pct"`

	ChurnDays          int `yaml:"churn_days"`
	RetentionDays      int `yaml:"retention_days"`
	LoyalMinPurchases  int `yaml:"loyal_min_purchases"`
	ReportTopCustomers int `yaml:"report_top_customers"`

	NumTransactions int    `yaml:"num_transactions"`
	Currency        string `yaml:"currency"`
	CompanyName     string `yaml:"company_name"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	SlackChannelID  string `yaml:"slack_channel_id"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	LLMModel        string `yaml:"llm_model"`

	Schedule string `yaml:"schedule"`
	Timezone string `yaml:"timezone"`

	Location *time.Location `yaml:"-"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.DataDir, "DATA_DIR")
	envOverride(&cfg.OutputDir, "OUTPUT_DIR")
	envOverride(&cfg.ExcelDir, "EXCEL_DIR")
	envOverride(&cfg.AnalysisDate, "ANALYSIS_DATE")
	envOverrideInt(&cfg.TopPercent, "TOP_PERCENT")
	envOverrideInt(&cfg.ScoreBins, "SCORE_BINS")
	envOverrideFloat(&cfg.CLVMultiplier, "CLV_MULTIPLIER")
	envOverrideFloat(&cfg.MaxInvalidPct, "MAX_INVALID_PCT")
	envOverrideInt(&cfg.ChurnDays, "CHURN_DAYS")
	envOverrideInt(&cfg.RetentionDays, "RETENTION_DAYS")
	envOverrideInt(&cfg.LoyalMinPurchases, "LOYAL_MIN_PURCHASES")
	envOverrideInt(&cfg.ReportTopCustomers, "REPORT_TOP_CUSTOMERS")
	envOverrideInt(&cfg.NumTransactions, "NUM_TRANSACTIONS")
	envOverride(&cfg.Currency, "CURRENCY")
	envOverride(&cfg.CompanyName, "COMPANY_NAME")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.Schedule, "SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")

	// Defaults
	if cfg.DBPath == "" {
		cfg.DBPath = "./retail.db"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ExcelDir == "" {
		cfg.ExcelDir = "./excel"
	}
	if cfg.TopPercent == 0 {
		cfg.TopPercent = 20
	}
	if cfg.ScoreBins == 0 {
		cfg.ScoreBins = 5
	}
	if cfg.CLVMultiplier == 0 {
		cfg.CLVMultiplier = 0.5
	}
	if cfg.MaxInvalidPct == 0 {
		cfg.MaxInvalidPct = 10
	}
	if cfg.ChurnDays == 0 {
		cfg.ChurnDays = 180
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = 30
	}
	if cfg.LoyalMinPurchases == 0 {
		cfg.LoyalMinPurchases = 5
	}
	if cfg.ReportTopCustomers == 0 {
		cfg.ReportTopCustomers = 50
	}
	if cfg.NumTransactions == 0 {
		cfg.NumTransactions = 8000
	}
	if cfg.Currency == "" {
		cfg.Currency = "₹"
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = "Retail Customer Intelligence"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultAnthropicModel
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	// Validate
	if cfg.AnalysisDate != "" {
		if _, err := parseDate(cfg.AnalysisDate); err != nil {
			log.Fatalf("invalid analysis_date '%s': expected YYYY-MM-DD", cfg.AnalysisDate)
		}
	}
	if cfg.TopPercent < 1 || cfg.TopPercent > 100 {
		log.Fatalf("invalid top_percent '%d': must be between 1 and 100", cfg.TopPercent)
	}
	if cfg.ScoreBins < 2 || cfg.ScoreBins > 9 {
		log.Fatalf("invalid score_bins '%d': must be between 2 and 9", cfg.ScoreBins)
	}
	if cfg.CLVMultiplier < 0 {
		log.Fatalf("invalid clv_multiplier '%f': must be >= 0", cfg.CLVMultiplier)
	}
	if cfg.MaxInvalidPct < 0 || cfg.MaxInvalidPct > 100 {
		log.Fatalf("invalid max_invalid_pct '%f': must be between 0 and 100", cfg.MaxInvalidPct)
	}
	if cfg.NumTransactions < 1 {
		log.Fatalf("invalid num_transactions '%d': must be >= 1", cfg.NumTransactions)
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		cfg.Location = loc
	}

	return cfg
}

// AnalysisDateOrZero returns the configured analysis date, or the zero time
// when the date should be derived from the data (max transaction date + 1).
func (c Config) AnalysisDateOrZero() time.Time {
	if c.AnalysisDate == "" {
		return time.Time{}
	}
	t, err := parseDate(c.AnalysisDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
