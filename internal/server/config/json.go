package config

import (
	"encoding/json"
	"os"

	"github.com/Janxz01/PersonalNoteHub/internal/flagx"
	"github.com/Janxz01/PersonalNoteHub/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Duration fields use
// timex.Duration so both "24h" strings and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	SummarizerAPIKey            string         `json:"summarizer_api_key"`
	SummarizerBaseURL           string         `json:"summarizer_base_url"`
	SummarizerModel             string         `json:"summarizer_model"`
	SummarizerTimeout           timex.Duration `json:"summarizer_timeout"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Absent file path means no
// overlay; fields missing from the file keep their current values. A file
// that cannot be read or parsed panics, as startup cannot proceed on a
// half-applied config.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.SummarizerAPIKey != "" {
		config.SummarizerAPIKey = c.SummarizerAPIKey
	}
	if c.SummarizerBaseURL != "" {
		config.SummarizerBaseURL = c.SummarizerBaseURL
	}
	if c.SummarizerModel != "" {
		config.SummarizerModel = c.SummarizerModel
	}
	if c.SummarizerTimeout.Duration != 0 {
		config.SummarizerTimeout = c.SummarizerTimeout.Duration
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
