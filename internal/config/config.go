package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/sensori-ai/farm-sectors/internal/domain"
)

// Source kinds accepted by SOURCE_KIND.
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// DefaultFarmBoundary is the demo property outline, as "lat,lng" pairs.
const DefaultFarmBoundary = "-24.76903205,-53.61433973;-24.76660228,-53.61436247;" +
	"-24.76657223,-53.61019779;-24.76160818,-53.61017136;-24.76165575,-53.61566249;" +
	"-24.76570689,-53.6156352;-24.76572836,-53.61723939;-24.76839536,-53.61722885;" +
	"-24.76903205,-53.61433973"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Polygon source.
	SourceKind    string
	SourceDir     string
	SourceBaseURL string
	SourceTimeout time.Duration
	SourcePaths   map[domain.Category]string // empty path disables the category

	Farm domain.Farm

	// Optional snapshot sink.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sourceTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("SOURCE_TIMEOUT", "5s"))
	if err != nil || sourceTimeout <= 0 {
		return nil, errors.New("invalid SOURCE_TIMEOUT")
	}

	boundary, err := ParseCoordinates(sharedcfg.EnvOrDefault("FARM_BOUNDARY", DefaultFarmBoundary))
	if err != nil {
		return nil, fmt.Errorf("invalid FARM_BOUNDARY: %w", err)
	}

	center, err := ParseCoordinates(sharedcfg.EnvOrDefault("FARM_DEFAULT_CENTER", "-23.5505,-46.6333"))
	if err != nil || len(center) != 1 {
		return nil, errors.New("invalid FARM_DEFAULT_CENTER")
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid KAFKA_ENABLED")
		}
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SourceKind:    strings.ToLower(sharedcfg.EnvOrDefault("SOURCE_KIND", SourceFile)),
		SourceDir:     sharedcfg.EnvOrDefault("SOURCE_DIR", "data/mock"),
		SourceBaseURL: strings.TrimRight(os.Getenv("SOURCE_BASE_URL"), "/"),
		SourceTimeout: sourceTimeout,
		SourcePaths: map[domain.Category]string{
			domain.CategoryWeed:    sharedcfg.EnvOrDefault("WEED_SOURCE_PATH", "ervas-daninhas.json"),
			domain.CategoryFailure: sharedcfg.EnvOrDefault("FAILURE_SOURCE_PATH", "falhas.json"),
			domain.CategoryVigor:   os.Getenv("VIGOR_SOURCE_PATH"),
		},

		Farm: domain.Farm{
			Name:          sharedcfg.EnvOrDefault("FARM_NAME", "Fazenda Modelo"),
			Boundary:      boundary,
			DefaultCenter: center[0],
		},

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "farm-sector-snapshots"),
	}

	switch cfg.SourceKind {
	case SourceFile:
	case SourceHTTP:
		if cfg.SourceBaseURL == "" {
			return nil, errors.New("SOURCE_BASE_URL is required when SOURCE_KIND is http")
		}
	default:
		return nil, fmt.Errorf("invalid SOURCE_KIND %q", cfg.SourceKind)
	}
	if len(cfg.EnabledCategories()) == 0 {
		return nil, errors.New("at least one of WEED_SOURCE_PATH, FAILURE_SOURCE_PATH, VIGOR_SOURCE_PATH must be set")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

// EnabledCategories returns the categories with a source path, in display order.
func (c *Config) EnabledCategories() []domain.Category {
	var out []domain.Category
	for _, cat := range domain.Categories() {
		if c.SourcePaths[cat] != "" {
			out = append(out, cat)
		}
	}
	return out
}

// ParseCoordinates parses "lat,lng;lat,lng;..." into coordinates. An empty
// string yields no coordinates.
func ParseCoordinates(s string) ([]domain.Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []domain.Coordinate
	for i, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		lat, lng, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("pair %d: expected lat,lng", i)
		}
		c, err := parsePair(lat, lng)
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func parsePair(lat, lng string) (domain.Coordinate, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || !(la >= -90 && la <= 90) {
		return domain.Coordinate{}, fmt.Errorf("invalid latitude %q", lat)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil || !(ln >= -180 && ln <= 180) {
		return domain.Coordinate{}, fmt.Errorf("invalid longitude %q", lng)
	}
	return domain.Coordinate{Lat: la, Lng: ln}, nil
}
