package main

import (
	"context"
	"os"

	"alertwatch/internal/api"
	"alertwatch/internal/config"
	"alertwatch/internal/config/firebase"
	"alertwatch/internal/logging"
	"alertwatch/internal/repository"
	"alertwatch/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.Configure(&logging.LogConfig{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	})
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	ctx := context.Background()
	if err := firebase.InitializeFirebase(ctx, cfg.FirebaseCredentialsFile); err != nil {
		logger.Error("Failed to initialize Firebase: %v", err)
		os.Exit(1)
	}
	defer firebase.Close()

	client := firebase.GetFirestoreClient()

	userRepo := repository.NewUserRepository(client)
	alertRepo := repository.NewAlertRepository(client)
	phoneRepo := repository.NewPhoneRepository(client)
	dispatchRepo := repository.NewDispatchRepository(client)

	var sender service.Sender
	if cfg.SMSConfigured() {
		sender = service.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		logger.Info("SMS transport configured")
	} else {
		logger.Warn("SMS transport not configured; notification sends will fail")
	}

	smsService := service.NewSMSService(sender, dispatchRepo)
	services := api.Services{
		Roles:  service.NewRoleService(userRepo, cfg.SuperadminEmail),
		Alerts: service.NewAlertService(alertRepo, phoneRepo, smsService, cfg.AlertDefaultTTLMinutes),
		Phones: service.NewPhoneService(phoneRepo),
		SMS:    smsService,
		Users:  service.NewUserService(userRepo),
	}

	srv := api.NewServer(cfg, services)
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.Error("Server exited: %v", err)
		os.Exit(1)
	}
}
