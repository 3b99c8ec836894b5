package main

import (
	"context"
	"log"

	"github.com/sirupsen/logrus"

	"lessonhub/internal/config"
	"lessonhub/internal/database"
	"lessonhub/internal/handlers/review"
	"lessonhub/internal/mail"
	"lessonhub/internal/server"
)

func main() {
	cfg := config.Load()

	// Connect to DB (if DB not available, Connect will return an error)
	db, err := database.Connect(cfg.DSN)
	if err != nil {
		log.Fatalf("DB connect error: %v", err)
	}

	// Run migrations if files exist (RunMigrations is tolerant if dir missing)
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("migrations error: %v", err)
	}

	reviewer, err := review.NewGeminiReviewer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("reviewer error: %v", err)
	}

	var mailer mail.Sender
	if cfg.SMTPHost != "" {
		mailer, err = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		if err != nil {
			log.Fatalf("mailer error: %v", err)
		}
	} else {
		mailer = mail.LogMailer{}
	}

	// Start server
	srv := server.NewServer(":"+cfg.Port, db, cfg, reviewer, mailer, logrus.StandardLogger())
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
