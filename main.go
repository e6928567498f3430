package main

import (
	"context"
	"fmt"
	apiHttp "github.com/brityrelay/smtp-relay/api/http"
	apiSmtp "github.com/brityrelay/smtp-relay/api/smtp"
	"github.com/brityrelay/smtp-relay/config"
	"github.com/brityrelay/smtp-relay/service"
	"github.com/brityrelay/smtp-relay/service/parser"
	"github.com/brityrelay/smtp-relay/service/registry"
	"github.com/brityrelay/smtp-relay/service/sink"
	"github.com/cenkalti/backoff/v4"
	"github.com/emersion/go-smtp"
	"log/slog"
	"net/http"
	"os"
)

func main() {

	// init config and logger
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to load the config from env: %s", err))
	}
	//
	opts := slog.HandlerOptions{
		Level: slog.Level(cfg.Log.Level),
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &opts))
	log.Info("starting the smtp relay")

	// account registry
	reg := registry.NewLogging(registry.NewService(registry.NewFileStore(cfg.Db.Path)), log)
	if err = reg.Load(); err != nil {
		panic(fmt.Sprintf("failed to load the accounts: %s", err))
	}
	// non-interactive startup: every configured account is active
	if err = reg.SetActive(nil); err != nil {
		panic(fmt.Sprintf("failed to init the active account set: %s", err))
	}
	log.Info(fmt.Sprintf("loaded %d account(s)", len(reg.List())))

	// vendor sink
	svcSink := sink.NewLogging(sink.NewService(cfg.Api.Vendor), log)
	probe := backoff.NewExponentialBackOff()
	probe.MaxElapsedTime = cfg.Api.Vendor.Probe.Timeout
	err = backoff.Retry(
		func() error {
			return svcSink.Check(context.TODO())
		},
		probe,
	)
	if err != nil {
		log.Warn(fmt.Sprintf("vendor endpoint is not reachable, serving anyway: %s", err))
	}

	// message adapter
	svc := service.NewService(parser.NewLogging(parser.NewService(), log), reg, svcSink)
	svc = service.NewLogging(svc, log)

	// admin api
	h := apiHttp.NewHandler(svc, reg, log)
	srvHttp := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Api.Http.Port),
		Handler:      h.Router(),
		ReadTimeout:  cfg.Api.Http.Timeout.Read,
		WriteTimeout: cfg.Api.Http.Timeout.Write,
	}
	go func() {
		log.Info(fmt.Sprintf("starting the admin api at %s", srvHttp.Addr))
		if errHttp := srvHttp.ListenAndServe(); errHttp != nil {
			panic(errHttp)
		}
	}()

	// inbound smtp
	b := apiSmtp.NewBackend(svc, int64(cfg.Api.Smtp.Data.Limit))
	b = apiSmtp.NewBackendLogging(b, log)
	srv := smtp.NewServer(b)
	srv.Addr = fmt.Sprintf(":%d", cfg.Api.Smtp.Port)
	srv.Domain = cfg.Api.Smtp.Host
	srv.AllowInsecureAuth = true
	srv.MaxMessageBytes = int64(cfg.Api.Smtp.Data.Limit)
	srv.MaxRecipients = int(cfg.Api.Smtp.Recipients.Limit)
	srv.ReadTimeout = cfg.Api.Smtp.Timeout.Read
	srv.WriteTimeout = cfg.Api.Smtp.Timeout.Write
	log.Info("starting to listen for inbound messages...")
	if err = srv.ListenAndServe(); err != nil {
		panic(err)
	}
}
