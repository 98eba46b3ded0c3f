package main

import (
	"context"
	"fmt"

	"sick-fits/config"
	"sick-fits/constants"
	"sick-fits/logging"
	"sick-fits/mail"
	"sick-fits/repositories"
	"sick-fits/services"
	"sick-fits/session"
	"sick-fits/storage"

	"gorm.io/gorm"
)

// app holds the wired service graph shared by the commands.
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	sessions repositories.ISessionRepository
	auth     services.IAuthService
	users    services.IUserService
	items    services.IItemService
	cookies  session.Cookies
}

func newApp(ctx context.Context, cfg *config.Config, db *gorm.DB) (*app, error) {
	var mailer mail.Mailer = mail.LogMailer{Logger: logging.New("mail")}
	if cfg.Mail.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	}

	var images storage.ImageStore
	if cfg.S3.Bucket != "" {
		client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		images = storage.NewS3ImageStore(client, cfg.S3.Bucket, cfg.S3.PublicURL, cfg.S3.UploadTTL)
	}

	userRepository := repositories.NewUserRepository(db)
	sessionRepository := repositories.NewSessionRepository(db)
	itemRepository := repositories.NewItemRepository(db)
	signer := session.NewJWTSigner(cfg.AppSecret, cfg.SessionTTL)
	authService := services.NewAuthService(userRepository, sessionRepository, signer, mailer, cfg.FrontendURL,
		services.WithResetTTL(cfg.ResetTTL))

	return &app{
		cfg:      cfg,
		db:       db,
		sessions: sessionRepository,
		auth:     authService,
		users:    services.NewUserService(userRepository),
		items:    services.NewItemService(itemRepository, userRepository, images),
		cookies:  session.Cookies{Name: constants.SessionCookieName, Secure: cfg.IsProd()},
	}, nil
}
