// cmd/server/main.go
package main

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wishwell/wishwell-backend/internal/config"
	"github.com/wishwell/wishwell-backend/internal/handler"
	"github.com/wishwell/wishwell-backend/internal/middleware"
	"github.com/wishwell/wishwell-backend/internal/notify"
	"github.com/wishwell/wishwell-backend/internal/queue"
	"github.com/wishwell/wishwell-backend/internal/repository"
	"github.com/wishwell/wishwell-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	configureLogging(cfg)

	campaignRepo, greetingRepo := buildRepositories(cfg)

	locks := &service.StoreLock{}
	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		GreetingRepo: greetingRepo,
		Locks:        locks,
	}
	greetingService := &service.GreetingService{
		GreetingRepo: greetingRepo,
		Locks:        locks,
	}

	q := buildQueue(cfg)
	dispatcher := &notify.Dispatcher{
		Queue:   q,
		BaseURL: cfg.BaseURL,
	}

	campaignHandler := &handler.CampaignHandler{
		Service:    campaignService,
		Dispatcher: dispatcher,
	}
	greetingHandler := &handler.GreetingHandler{
		Service: greetingService,
	}
	uploadHandler := &handler.UploadHandler{
		CampaignService: campaignService,
		PublicDir:       cfg.PublicDir,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Campaign routes
	r.Get("/campaigns", campaignHandler.ListCampaigns)
	r.Post("/campaigns", campaignHandler.CreateCampaign)
	r.Get("/campaigns/{id}", campaignHandler.GetCampaign)
	r.Patch("/campaigns/{id}", campaignHandler.PatchCampaign)
	r.Delete("/campaigns/{id}", campaignHandler.DeleteCampaign)
	r.Post("/campaigns/{id}/invite", campaignHandler.InviteEmails)
	r.Get("/campaigns/{id}/verify", campaignHandler.VerifyInvitee)
	r.Post("/campaigns/{id}/refresh-status", campaignHandler.RefreshStatus)

	// Greeting routes
	r.Get("/greetings", greetingHandler.ListGreetings)
	r.Post("/greetings", greetingHandler.CreateGreeting)

	// Photo upload + static serving of uploaded photos
	r.Post("/upload/birthday-photo", uploadHandler.UploadBirthdayPhoto)
	uploadsDir := filepath.Join(cfg.PublicDir, "uploads")
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	logrus.WithField("addr", cfg.ListenAddr).Info("server running")
	logrus.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}

func configureLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func buildRepositories(cfg *config.Config) (repository.CampaignRepositoryInterface, repository.GreetingRepositoryInterface) {
	if cfg.StorageBackend == "postgres" {
		db, err := repository.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("failed to connect to postgres: %v", err)
		}
		logrus.Info("using postgres storage backend")
		return &repository.PostgresCampaignRepository{DB: db}, &repository.PostgresGreetingRepository{DB: db}
	}
	logrus.WithField("dir", cfg.DataDir).Info("using JSON file storage backend")
	return repository.NewJSONCampaignRepository(cfg.DataDir), repository.NewJSONGreetingRepository(cfg.DataDir)
}

// buildQueue returns the notification queue. In memory mode emails are sent
// from this process; in rabbitmq mode cmd/worker consumes them instead.
func buildQueue(cfg *config.Config) queue.Queue {
	if cfg.QueueBackend == "rabbitmq" {
		q, err := queue.DialAMQP(cfg.AMQPURL)
		if err != nil {
			logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		logrus.Info("publishing notifications to RabbitMQ")
		return q
	}

	q := queue.NewInMemoryQueue()
	notify.StartEmailSubscriber(q, buildSender(cfg))
	return q
}

func buildSender(cfg *config.Config) notify.EmailSender {
	if cfg.EmailBackend == "smtp" {
		return notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}
	logrus.Info("email backend is log-only, no mail will be sent")
	return notify.LogSender{}
}
