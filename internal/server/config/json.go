package config

import (
	"encoding/json"
	"os"

	"github.com/ikhlashousing/propertycms/internal/flagx"
	"github.com/ikhlashousing/propertycms/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields
// distinguish "absent" from zero values so a partial file only overrides what
// it names.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RecoveryCodeValidityDuration *timex.Duration `json:"recovery_code_validity_duration"`
	MaxRecoveryAttempts          *int            `json:"max_recovery_attempts"`
	AuthRateLimit                *int            `json:"auth_rate_limit"`
	ExposeRecoveryCode           *bool           `json:"expose_recovery_code"`
	TrustProxy                   *bool           `json:"trust_proxy"`
	UploadBackend                *string         `json:"upload_backend"`
	UploadDir                    *string         `json:"upload_dir"`
	MaxUploadBytes               *int64          `json:"max_upload_bytes"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	S3PublicBaseURL              *string         `json:"s3_public_base_url"`
	SMTPHost                     *string         `json:"smtp_host"`
	SMTPPort                     *int            `json:"smtp_port"`
	SMTPUsername                 *string         `json:"smtp_username"`
	SMTPPassword                 *string         `json:"smtp_password"`
	SMTPFrom                     *string         `json:"smtp_from"`
	ContactRecipient             *string         `json:"contact_recipient"`
	LogBackend                   *string         `json:"log_backend"`
	CORSAllowedOrigins           []string        `json:"cors_allowed_origins"`
}

// parseJson overlays values from the file named by -c / -config. Without the
// flag nothing is loaded. Unreadable files or invalid JSON panic.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RecoveryCodeValidityDuration != nil {
		config.RecoveryCodeValidityDuration = c.RecoveryCodeValidityDuration.Duration
	}
	setInt(&config.MaxRecoveryAttempts, c.MaxRecoveryAttempts)
	setInt(&config.AuthRateLimit, c.AuthRateLimit)
	if c.ExposeRecoveryCode != nil {
		config.ExposeRecoveryCode = *c.ExposeRecoveryCode
	}
	if c.TrustProxy != nil {
		config.TrustProxy = *c.TrustProxy
	}
	setString(&config.UploadBackend, c.UploadBackend)
	setString(&config.UploadDir, c.UploadDir)
	if c.MaxUploadBytes != nil {
		config.MaxUploadBytes = *c.MaxUploadBytes
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.SMTPHost, c.SMTPHost)
	setInt(&config.SMTPPort, c.SMTPPort)
	setString(&config.SMTPUsername, c.SMTPUsername)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SMTPFrom, c.SMTPFrom)
	setString(&config.ContactRecipient, c.ContactRecipient)
	setString(&config.LogBackend, c.LogBackend)
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
