package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luax.health/configs"
	"luax.health/configs/configsdatabase"
	"luax.health/configs/configslog"
	"luax.health/database"
	"luax.health/pkg/mailer"
	"luax.health/repositories"
	"luax.health/routes"
	"luax.health/services"
	"luax.health/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.Load()
	configslog.InitLogger(cfg.LogLevel, cfg.LogFormat)
	defer configslog.SyncLogger()

	clinic, err := configs.LoadClinic(cfg.ClinicProfilePath)
	if err != nil {
		configslog.Log.Fatal("Clinic profile could not be loaded", zap.String("path", cfg.ClinicProfilePath), zap.Error(err))
	}

	db := configsdatabase.InitDB(cfg)
	defer configsdatabase.CloseDB()

	if cfg.AutoMigrate {
		if err := database.Initialize(db, true, false); err != nil {
			configslog.Log.Fatal("Startup migrations failed", zap.Error(err))
		}
	}

	var sender mailer.Sender = mailer.LogSender{}
	if cfg.MailEnabled() {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailSender(),
		})
		configslog.SLog.Infof("Mail: SMTP via %s:%d", cfg.MailHost, cfg.MailPort)
	} else {
		configslog.SLog.Warn("Mail: SMTP credentials not set, notifications are only logged")
	}

	patientRepo := repositories.NewPatientRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)

	notifier := services.NewNotificationService(sender, clinic, cfg.MailTimeout)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, notifier)
	patientService := services.NewPatientService(patientRepo)

	app := fiber.New(fiber.Config{
		AppName:      clinic.Name,
		Views:        views.NewEngine(!cfg.IsProduction()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		Config:       cfg,
		Clinic:       clinic,
		Sessions:     configs.SetupSession(cfg),
		Auth:         services.NewAuthService(patientRepo, cfg.AdminPassword),
		Appointments: appointmentService,
		Patients:     patientService,
		Export:       services.NewExportService(appointmentService, patientService),
	})

	go func() {
		configslog.SLog.Infof("%s listening on %s", clinic.Name, cfg.ListenAddr())
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			configslog.Log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		configslog.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	configslog.SLog.Info("Server stopped")
}
