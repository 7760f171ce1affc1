// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/hibp"
	"pwd-strength/pkg/strength"
	"reflect"
	"strings"
)

type Config struct {
	Port          uint16  `mapstructure:"PORT" validate:"required"`
	SelfTLS       bool    `mapstructure:"SELF_TLS" validate:"required_without_all=TLSCert TLSKey"`
	TLSCert       string  `mapstructure:"TLS_CERT" validate:"required_if=SelfTLS false,required_with=TLSKey"`
	TLSKey        string  `mapstructure:"TLS_KEY" validate:"required_if=SelfTLS false,required_with=TLSCert"`
	Debug         bool    `mapstructure:"DEBUG"`
	GuessRate     float64 `mapstructure:"GUESS_RATE" validate:"gt=0"`
	HIBPEnabled   bool    `mapstructure:"HIBP_ENABLED"`
	HIBPURL       string  `mapstructure:"HIBP_URL" validate:"omitempty,url"`
	HIBPCacheSize int64   `mapstructure:"HIBP_CACHE_SIZE" validate:"gte=0"`
}

// Flags that override their env counterpart when set on the command line.
var flagKeys = map[string]string{
	"port":            "PORT",
	"self-tls":        "SELF_TLS",
	"tls-cert":        "TLS_CERT",
	"tls-key":         "TLS_KEY",
	"verbose":         "DEBUG",
	"guess-rate":      "GUESS_RATE",
	"hibp":            "HIBP_ENABLED",
	"hibp-url":        "HIBP_URL",
	"hibp-cache-size": "HIBP_CACHE_SIZE",
}

func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			bindEnvs(v, fv.Interface(), append(parts, tv)...)
		default:
			_ = v.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without_all":
		return fmt.Sprintf("This field is required if fields [%s] are missing", util.ToScreamingSnakeCase(fe.Param()))
	case "required_if":
		return fmt.Sprintf("This field is required if %s", util.ToScreamingSnakeCase(fe.Param()))
	case "required_with":
		return fmt.Sprintf("This is field requires the presence of %s", util.ToScreamingSnakeCase(fe.Param()))
	case "gt":
		return fmt.Sprintf("This field must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("This field must be greater than or equal to %s", fe.Param())
	case "url":
		return "This field must be a valid URL"
	}
	return fe.Error() // default error
}

// Load reads the configuration from the environment, a .env file in the
// working directory when present and, with the highest priority, any flag in
// flags that was explicitly set.
func Load(flags *pflag.FlagSet) (config Config, err error) {
	if err = godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("PORT", 3100)
	v.SetDefault("GUESS_RATE", strength.DefaultGuessRate)
	v.SetDefault("HIBP_URL", hibp.DefaultBaseURL)
	v.SetDefault("HIBP_CACHE_SIZE", 4096)

	// I hate this, but it works.
	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	config = Config{}
	bindEnvs(v, config)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err = v.BindPFlag(key, f); err != nil {
					return config, err
				}
			}
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("error reading configuration: %w", err)
	}

	return config, Validate(config)
}

func Validate(config Config) error {
	validate := validator.New()
	if err := validate.Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			var msgs []string
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToScreamingSnakeCase(fe.Field()), msgForTag(fe)))
			}
			return errors.New(strings.Join(msgs, ". "))
		}
		return fmt.Errorf("error validating configuration from environment: %w", err)
	}

	return nil
}
