// Package config provides type-safe environment variable loading with caching
// using Go generics, plus YAML runtime file decoding.
//
// The package loads a .env file on first use and uses the caarlos0/env library
// for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type MailConfig struct {
//		Transport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
//		SMTPHost  string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
//	}
//
//	var cfg MailConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is loaded only once per application lifetime;
// later calls return the cached value.
//
// Runtime files:
//
//	var rt RuntimeFile
//	if err := config.LoadFile("notifier.yaml", &rt, true); err != nil {
//		return err
//	}
package config
