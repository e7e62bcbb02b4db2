package config

import (
	"encoding/json"
	"os"

	"github.com/avdeev-d/gallerykeep/internal/flagx"
	"github.com/avdeev-d/gallerykeep/internal/timex"
)

// JSONConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "168h" and integer nanoseconds. After
// unmarshalling, non-zero fields are copied into the runtime Config.
type JSONConfig struct {
	EndpointAddr     string         `json:"endpoint_addr"`
	DatabaseDSN      string         `json:"database_dsn"`
	CookieSecret     string         `json:"cookie_secret"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	ImageDir         string         `json:"image_dir"`
	ThumbnailMaxDim  int            `json:"thumbnail_max_dim"`
	TemplateGlob     string         `json:"template_glob"`
	PublicHost       string         `json:"public_host"`
	AdminEmail       string         `json:"admin_email"`
	SenderEmail      string         `json:"sender_email"`
	MailtrapEndpoint string         `json:"mailtrap_endpoint"`
	MailtrapAPIKey   string         `json:"mailtrap_api_key"`
	S3Enabled        bool           `json:"s3_enabled"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJSON(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JSONConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.CookieSecret != "" {
		config.CookieSecret = c.CookieSecret
	}
	if c.SessionTTL.Duration != 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.ImageDir != "" {
		config.ImageDir = c.ImageDir
	}
	if c.ThumbnailMaxDim != 0 {
		config.ThumbnailMaxDim = c.ThumbnailMaxDim
	}
	if c.TemplateGlob != "" {
		config.TemplateGlob = c.TemplateGlob
	}
	if c.PublicHost != "" {
		config.PublicHost = c.PublicHost
	}
	if c.AdminEmail != "" {
		config.AdminEmail = c.AdminEmail
	}
	if c.SenderEmail != "" {
		config.SenderEmail = c.SenderEmail
	}
	if c.MailtrapEndpoint != "" {
		config.MailtrapEndpoint = c.MailtrapEndpoint
	}
	if c.MailtrapAPIKey != "" {
		config.MailtrapAPIKey = c.MailtrapAPIKey
	}
	if c.S3Enabled {
		config.S3Enabled = true
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
