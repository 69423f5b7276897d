package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays CMS_* environment variables. Unset variables leave the
// current value alone because env.Parse only writes fields it finds.
func parseEnv(config *Config) {
	opts := env.Options{Prefix: "CMS_"}

	e := struct {
		EndpointAddrHTTP             *string  `env:"HTTP_ADDR"`
		DatabaseDSN                  *string  `env:"DATABASE_DSN"`
		SecretKey                    *string  `env:"SECRET_KEY"`
		AccessTokenValidityDuration  *string  `env:"ACCESS_TOKEN_TTL"`
		RecoveryCodeValidityDuration *string  `env:"RECOVERY_CODE_TTL"`
		MaxRecoveryAttempts          *int     `env:"MAX_RECOVERY_ATTEMPTS"`
		AuthRateLimit                *int     `env:"AUTH_RATE_LIMIT"`
		ExposeRecoveryCode           *bool    `env:"EXPOSE_RECOVERY_CODE"`
		TrustProxy                   *bool    `env:"TRUST_PROXY"`
		UploadBackend                *string  `env:"UPLOAD_BACKEND"`
		UploadDir                    *string  `env:"UPLOAD_DIR"`
		S3RootUser                   *string  `env:"S3_ROOT_USER"`
		S3RootPassword               *string  `env:"S3_ROOT_PASSWORD"`
		S3Bucket                     *string  `env:"S3_BUCKET"`
		S3Region                     *string  `env:"S3_REGION"`
		S3BaseEndpoint               *string  `env:"S3_BASE_ENDPOINT"`
		S3PublicBaseURL              *string  `env:"S3_PUBLIC_BASE_URL"`
		SMTPHost                     *string  `env:"SMTP_HOST"`
		SMTPPort                     *int     `env:"SMTP_PORT"`
		SMTPUsername                 *string  `env:"SMTP_USERNAME"`
		SMTPPassword                 *string  `env:"SMTP_PASSWORD"`
		SMTPFrom                     *string  `env:"SMTP_FROM"`
		ContactRecipient             *string  `env:"CONTACT_RECIPIENT"`
		LogBackend                   *string  `env:"LOG_BACKEND"`
		CORSAllowedOrigins           []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	}{}

	if err := env.ParseWithOptions(&e, opts); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, e.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, e.AccessTokenValidityDuration)
	setDuration(&config.RecoveryCodeValidityDuration, e.RecoveryCodeValidityDuration)
	setInt(&config.MaxRecoveryAttempts, e.MaxRecoveryAttempts)
	setInt(&config.AuthRateLimit, e.AuthRateLimit)
	if e.ExposeRecoveryCode != nil {
		config.ExposeRecoveryCode = *e.ExposeRecoveryCode
	}
	if e.TrustProxy != nil {
		config.TrustProxy = *e.TrustProxy
	}
	setString(&config.UploadBackend, e.UploadBackend)
	setString(&config.UploadDir, e.UploadDir)
	setString(&config.S3RootUser, e.S3RootUser)
	setString(&config.S3RootPassword, e.S3RootPassword)
	setString(&config.S3Bucket, e.S3Bucket)
	setString(&config.S3Region, e.S3Region)
	setString(&config.S3BaseEndpoint, e.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, e.S3PublicBaseURL)
	setString(&config.SMTPHost, e.SMTPHost)
	setInt(&config.SMTPPort, e.SMTPPort)
	setString(&config.SMTPUsername, e.SMTPUsername)
	setString(&config.SMTPPassword, e.SMTPPassword)
	setString(&config.SMTPFrom, e.SMTPFrom)
	setString(&config.ContactRecipient, e.ContactRecipient)
	setString(&config.LogBackend, e.LogBackend)
	if len(e.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = e.CORSAllowedOrigins
	}
}
