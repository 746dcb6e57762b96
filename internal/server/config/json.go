package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dealdocs/internal/flagx"
	"github.com/dmitrijs2005/dealdocs/internal/timex"
)

// JsonConfig is the DTO read from the JSON config file. Interval fields use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
// Zero values leave the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddrGRPC        string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DocumentsDSN            string         `json:"documents_dsn"`
	CatalogDSN              string         `json:"catalog_dsn"`
	SecretKey               string         `json:"secret_key"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	PresignExpiry           timex.Duration `json:"presign_expiry"`
	StoreTimeout            timex.Duration `json:"store_timeout"`
	CompletenessConcurrency int            `json:"completeness_concurrency"`
	LogBackend              string         `json:"log_backend"`
	Environment             string         `json:"environment"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $DEALDOCS_CONFIG) onto config. It panics if the file cannot be read or
// parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DocumentsDSN, c.DocumentsDSN)
	setString(&config.CatalogDSN, c.CatalogDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.Environment, c.Environment)

	if c.PresignExpiry.Duration > 0 {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
	if c.StoreTimeout.Duration > 0 {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.CompletenessConcurrency > 0 {
		config.CompletenessConcurrency = c.CompletenessConcurrency
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
