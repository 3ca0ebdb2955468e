package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ZeroLiu2018/mcbench/constants"

	validator "github.com/go-playground/validator/v10"
)

// BenchConfig holds all parameters for a single benchmark run. It is resolved
// once at startup (explicit flag > environment variable > default) and treated
// as read-only afterwards.
type BenchConfig struct {
	TotalRequests int    `json:"total_requests" validate:"gte=0"`
	Concurrency   int    `json:"concurrency" validate:"required,gt=0"`
	ValueSize     int    `json:"value_size" validate:"gte=0"`
	Operation     string `json:"operation" validate:"required,valid_operation"`

	Protocol      string `json:"protocol" validate:"required,valid_protocol"`
	DeviceName    string `json:"device_name" validate:"required_if=Protocol rdma"`
	LocalHostname string `json:"local_hostname" validate:"required"`

	MetadataServer      string `json:"metadata_server" validate:"required,valid_endpoint"`
	MasterServerAddress string `json:"master_server_address" validate:"required,valid_endpoint"`

	GlobalSegmentSize int64 `json:"global_segment_size" validate:"required,gt=0"`
	LocalBufferSize   int64 `json:"local_buffer_size" validate:"required,gt=0"`

	DialTimeout    Duration `json:"dial_timeout" validate:"required"`
	RequestTimeout Duration `json:"request_timeout" validate:"required"`

	// Seed drives payload generation only; key naming is deterministic
	Seed int64 `json:"seed" validate:"required"`

	// ResultsFile, when set, receives one CSV row per completed run
	ResultsFile string `json:"results_file"`
}

// Custom validation tags
const (
	operationTag = "valid_operation"
	protocolTag  = "valid_protocol"
	endpointTag  = "valid_endpoint"
)

// RegisterCustomValidators registers all custom validators for BenchConfig
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(operationTag, validateOperation); err != nil {
		return fmt.Errorf("failed to register operation validator: %w", err)
	}
	if err := v.RegisterValidation(protocolTag, validateProtocol); err != nil {
		return fmt.Errorf("failed to register protocol validator: %w", err)
	}
	if err := v.RegisterValidation(endpointTag, validateEndpoint); err != nil {
		return fmt.Errorf("failed to register endpoint validator: %w", err)
	}
	return nil
}

// validateOperation ensures the operation is one of the allowed values
func validateOperation(fl validator.FieldLevel) bool {
	op := fl.Field().String()
	validOps := map[string]bool{
		constants.OP_PUT:   true,
		constants.OP_GET:   true,
		constants.OP_MIXED: true,
	}
	return validOps[op]
}

func validateProtocol(fl validator.FieldLevel) bool {
	protocol := fl.Field().String()
	validProtocols := map[string]bool{
		constants.PROTOCOL_TCP:  true,
		constants.PROTOCOL_RDMA: true,
	}
	return validProtocols[protocol]
}

// validateEndpoint ensures the endpoint string is host:port with a valid port
func validateEndpoint(fl validator.FieldLevel) bool {
	endpoint := fl.Field().String()

	// Strip protocol if present
	if strings.HasPrefix(endpoint, "http://") {
		endpoint = endpoint[7:]
	} else if strings.HasPrefix(endpoint, "https://") {
		endpoint = endpoint[8:]
	}

	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		return false
	}

	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return false
	}

	// Hostnames are allowed alongside literal IPs; only an empty host is rejected
	return host != ""
}

// envOr returns the environment variable value or fallback when unset/empty
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// firstEnv returns the first non-empty value among the given environment
// variables, falling back when none is set
func firstEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return fallback
}

func GetDefaultConfig() *BenchConfig {
	return &BenchConfig{
		TotalRequests: constants.DEFAULT_REQUESTS,
		Concurrency:   constants.DEFAULT_CONCURRENCY,
		ValueSize:     constants.DEFAULT_VALUE_SIZE,
		Operation:     constants.OP_PUT,
		Protocol:      envOr(constants.ENV_PROTOCOL, constants.PROTOCOL_TCP),
		DeviceName:    os.Getenv(constants.ENV_DEVICE_NAME),
		LocalHostname: envOr(constants.ENV_LOCAL_HOSTNAME, constants.DEFAULT_LOCAL_HOSTNAME),
		MetadataServer: firstEnv(constants.DEFAULT_METADATA_SERVER,
			constants.ENV_METADATA_SERVER, constants.ENV_METADATA_ADDR),
		MasterServerAddress: envOr(constants.ENV_MASTER_SERVER, constants.DEFAULT_MASTER_SERVER),
		GlobalSegmentSize:   constants.DEFAULT_GLOBAL_SEGMENT_SIZE,
		LocalBufferSize:     constants.DEFAULT_LOCAL_BUFFER_SIZE,
		DialTimeout:         Duration(5 * time.Second),
		RequestTimeout:      Duration(10 * time.Second),
		Seed:                constants.DEFAULT_SEED,
	}
}

func ValidateConfig(config *BenchConfig) error {
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		return fmt.Errorf("failed to register custom validators: %w", err)
	}
	return v.Struct(config)
}

func ReadConfig(path string) (*BenchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	benchConfig := &BenchConfig{}
	err = json.Unmarshal(data, benchConfig)
	if err != nil {
		return nil, err
	}
	err = ValidateConfig(benchConfig)
	if err != nil {
		return nil, err
	}
	return benchConfig, nil
}

func (cfg *BenchConfig) WriteConfig(path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
