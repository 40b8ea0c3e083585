package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Redis holds the durable cache tier connection settings.
	Redis RedisConfig `mapstructure:",squash"`

	// Database holds the storefront backend database settings.
	Database DatabaseConfig `mapstructure:",squash"`

	// Providers holds the external geocoding and routing endpoints.
	Providers ProviderConfig `mapstructure:",squash"`

	// Pricing holds the store location and charge rule settings.
	Pricing PricingConfig `mapstructure:",squash"`
}

// RedisConfig holds the Redis connection details for the durable cache tier.
type RedisConfig struct {
	// URL is the Redis connection string.
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// DatabaseConfig holds the Postgres connection for zone and rate reference data.
type DatabaseConfig struct {
	// URL is the Postgres connection string.
	URL string `mapstructure:"DATABASE_URL" required:"true"`
}

// ProviderConfig holds the external provider endpoints used by the resolver.
type ProviderConfig struct {
	// GeocodingURL is the Nominatim-compatible search endpoint.
	GeocodingURL string `mapstructure:"GEOCODING_URL" default:"https://nominatim.openstreetmap.org/search"`
	// RoutingURL is the OSRM-compatible route endpoint base.
	RoutingURL string `mapstructure:"ROUTING_URL" default:"https://router.project-osrm.org/route/v1"`
	// CountryName is appended to geocoding queries.
	CountryName string `mapstructure:"GEOCODING_COUNTRY" default:"India"`
	// CountryCode scopes geocoding results.
	CountryCode string `mapstructure:"GEOCODING_COUNTRY_CODE" default:"in"`
	// TimeoutSeconds bounds each outbound provider call.
	TimeoutSeconds int `mapstructure:"PROVIDER_TIMEOUT_SECONDS" default:"10"`
}

// PricingConfig holds the store origin and delivery charge rule settings.
type PricingConfig struct {
	// OriginLat is the latitude of the store.
	OriginLat float64 `mapstructure:"STORE_LAT" default:"21.0919"`
	// OriginLng is the longitude of the store.
	OriginLng float64 `mapstructure:"STORE_LNG" default:"79.0556"`
	// OriginPincode is the store's own pincode; deliveries to it are free.
	OriginPincode string `mapstructure:"STORE_PINCODE" default:"440024"`
	// DefaultRatePerKm is the per-km rate used until the server rate is read.
	DefaultRatePerKm float64 `mapstructure:"RATE_PER_KM" default:"10"`
	// MaxDistanceKm is the delivery service range limit.
	MaxDistanceKm float64 `mapstructure:"MAX_DELIVERY_DISTANCE_KM" default:"50"`
	// CacheTTLMinutes is how long calculated quotes stay valid in both tiers.
	CacheTTLMinutes int `mapstructure:"DELIVERY_CACHE_TTL_MINUTES" default:"30"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
