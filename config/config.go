package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"comp-valuation/valuation"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	PropertyAPIURL  string
	ConditionAPIURL string
	APIToken        string

	InputJSONPath string
	CSVOutputPath string
	CostsYAMLPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "valuation"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "valuation123"),
		PostgresDB:       getEnv("POSTGRES_DB", "valuation_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		PropertyAPIURL:  getEnv("PROPERTY_API_URL", "https://developers.homesage.ai/api/properties/info/"),
		ConditionAPIURL: getEnv("CONDITION_API_URL", "https://developers.homesage.ai/api/properties/property-condition/"),
		APIToken:        getEnv("PROPERTY_API_TOKEN", ""),

		InputJSONPath: getEnv("INPUT_JSON_PATH", "./data/subject_comps.json"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/adjustment_grid.csv"),
		CostsYAMLPath: getEnv("COSTS_YAML_PATH", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// costFile is the optional YAML override document: any subset of cost or
// policy fields may be present; everything absent keeps its default.
type costFile struct {
	Costs  valuation.CostAssumptions  `yaml:"costs"`
	Policy valuation.AdjustmentPolicy `yaml:"policy"`
}

// CostModel returns the cost assumptions and adjustment policy for this run:
// baked-in defaults, overlaid by the optional YAML file, overlaid by the cap
// environment variables.
func (c *Config) CostModel() (valuation.CostAssumptions, valuation.AdjustmentPolicy, error) {
	cf := costFile{
		Costs:  valuation.DefaultCosts(),
		Policy: valuation.DefaultPolicy(),
	}

	if c.CostsYAMLPath != "" {
		data, err := os.ReadFile(c.CostsYAMLPath)
		if err != nil {
			return cf.Costs, cf.Policy, err
		}
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return cf.Costs, cf.Policy, err
		}
	}

	// Cap env vars win over the YAML file when explicitly set.
	if v, ok := lookupEnvFloat("LINE_CAP_PCT"); ok {
		cf.Policy.LineCapPct = v
	}
	if v, ok := lookupEnvFloat("TOTAL_CAP_PCT"); ok {
		cf.Policy.TotalCapPct = v
	}
	return cf.Costs, cf.Policy, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func lookupEnvFloat(key string) (float64, bool) {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}
