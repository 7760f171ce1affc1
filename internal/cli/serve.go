// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"net/http"
	"os"
	"os/signal"
	"pwd-strength/internal/api"
	"pwd-strength/internal/config"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/generator"
	"pwd-strength/pkg/hibp"
	"pwd-strength/pkg/strength"
	"syscall"
	"time"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for scoring and generating passwords",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("invalid server configuration: %w", err)
			}
			return serveCommand(cfg)
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")
	serveCmd.Flags().Float64Var(&guessRate, "guess-rate", strength.DefaultGuessRate, "Assumed attacker guesses per second")
	serveCmd.Flags().BoolVar(&hibpEnabled, "hibp", false, "Enable breach lookups against the Pwned Passwords range API")
	serveCmd.Flags().StringVar(&hibpURL, "hibp-url", hibp.DefaultBaseURL, "Base URL of the Pwned Passwords range API")
	serveCmd.Flags().Int64Var(&hibpCacheSize, "hibp-cache-size", 4096, "Number of range responses kept in memory")

	rootCmd.AddCommand(serveCmd)
}

func serveCommand(cfg config.Config) error {
	util.ApplyCliSettings(cfg.Debug, profile, pprofPort)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := api.Options{
		Estimator: strength.NewEstimator(strength.WithGuessRate(cfg.GuessRate)),
		Generator: generator.New(generator.CryptoSource),
	}
	if cfg.HIBPEnabled {
		client, err := hibp.NewClient(hibp.Options{
			BaseURL:   cfg.HIBPURL,
			RetryMax:  3,
			CacheSize: cfg.HIBPCacheSize,
		})
		if err != nil {
			return fmt.Errorf("error initializing breach client: %w", err)
		}
		log.Info().Msgf("breach lookups enabled against %s", cfg.HIBPURL)
		opts.Breach = client
	}

	srvAddr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    srvAddr,
		Handler: api.NewRouter(opts),
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		if cfg.TLSCert != "" && cfg.TLSKey != "" {
			if err := srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("error starting server")
			}
			return
		}

		log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
		pair, err := selfSignedPair()
		if err != nil {
			log.Fatal().Err(err).Msg("error generating auto self-signed certificate")
		}
		srv.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{pair},
		}

		// service connections with tls config, no need to pass files
		if err = srv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	gracefulShutdown(srv)
	return nil
}

// selfSignedPair creates a 30 day certificate, renewed on every start.
func selfSignedPair() (tls.Certificate, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		NotAfter:  time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return tls.Certificate{}, err
	}

	return tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)
	// kill -9 can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}
	log.Info().Msg("server exiting...")
}
