// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/internal/api"
	"github.com/alvinbaena/pwd-analyst/internal/config"
	"github.com/alvinbaena/pwd-analyst/internal/util"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password analysis API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			srvCfg, err := api.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			return serveCommand(cfg, srvCfg)
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", api.DefaultPort, "Port to be used by the server")
	serveCmd.Flags().Int64Var(&maxUploadMB, "max-upload-mb", api.DefaultMaxUploadMB, "Maximum size in MiB of uploaded password files")

	rootCmd.AddCommand(serveCmd)
}

func newRouter(cfg config.Config, srvCfg api.Config) (*gin.Engine, func(), error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.SetLogger(logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
		return zerolog.New(gin.DefaultWriter).With().Timestamp().Logger()
	})))
	router.MaxMultipartMemory = srvCfg.MaxUploadMB << 20

	client, err := newPwnedClient(cfg.Hibp)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing API: %s", err)
	}
	closer := func() {
		if client != nil {
			client.Close()
		}
	}

	v1 := router.Group("/v1")
	api.RegisterHealthApi(v1)
	api.RegisterAnalysisApi(v1, cfg, client, srvCfg.MaxUploadMB<<20)

	return router, closer, nil
}

func selfSignedConfig() (*tls.Config, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		// 30 day self-signed cert.
		NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	// generating the certificate
	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return nil, fmt.Errorf("error generating auto self-signed certificate: %w", err)
	}

	pair, err := tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
	if err != nil {
		return nil, fmt.Errorf("error using auto self-signed certificate: %w", err)
	}

	return &tls.Config{Certificates: []tls.Certificate{pair}}, nil
}

func serveCommand(cfg config.Config, srvCfg api.Config) error {
	util.ApplyCliSettings(verbose || srvCfg.Debug, profile, pprofPort)
	if !verbose && !srvCfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router, closer, err := newRouter(cfg, srvCfg)
	if err != nil {
		return err
	}
	defer closer()

	srvAddr := fmt.Sprintf(":%d", srvCfg.Port)
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if srvCfg.TLSCert == "" || srvCfg.TLSKey == "" {
		log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
		if srv.TLSConfig, err = selfSignedConfig(); err != nil {
			return err
		}
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		// with a TLSConfig there is no need to pass files
		if err := srv.ListenAndServeTLS(srvCfg.TLSCert, srvCfg.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	gracefulShutdown(srv)
	return nil
}

func gracefulShutdown(srv *http.Server) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can't be a catch, so don't need to add it
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
