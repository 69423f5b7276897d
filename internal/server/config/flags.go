package config

import (
	"flag"
	"time"

	"github.com/ikhlashousing/propertycms/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-o int      OTP validity, minutes
//	-l string   log backend ("slog" or "zerolog")
//	-m string   upload backend ("local" or "s3")
//	-f string   local upload directory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Duration flags are accepted as integers in minutes and only override the
// earlier layers when they are actually passed.
func parseFlags(config *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-d", "-s", "-t", "-o", "-l", "-m", "-f", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	recoveryCodeValidityDuration := fs.Int("o", int(config.RecoveryCodeValidityDuration.Minutes()), "recovery_code_validity_duration (in minutes)")

	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")
	fs.StringVar(&config.UploadBackend, "m", config.UploadBackend, "upload backend")
	fs.StringVar(&config.UploadDir, "f", config.UploadDir, "upload directory")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "o":
			config.RecoveryCodeValidityDuration = time.Duration(*recoveryCodeValidityDuration) * time.Minute
		}
	})
}

// setDuration parses v with time.ParseDuration and panics on bad input.
func setDuration(dst *time.Duration, v *string) {
	if v == nil {
		return
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
