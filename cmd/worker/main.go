// cmd/worker/main.go
//
// Email worker: consumes notification jobs from RabbitMQ and delivers them
// over SMTP. Run it alongside the server when QUEUE_BACKEND=rabbitmq; with
// the in-memory queue the server sends emails itself and no worker is
// needed.
package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wishwell/wishwell-backend/internal/config"
	"github.com/wishwell/wishwell-backend/internal/notify"
	"github.com/wishwell/wishwell-backend/internal/queue"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	q, err := queue.DialAMQP(cfg.AMQPURL)
	if err != nil {
		logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer q.Close()

	var sender notify.EmailSender
	if cfg.EmailBackend == "smtp" {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		logrus.Info("email backend is log-only, no mail will be sent")
		sender = notify.LogSender{}
	}

	err = q.Subscribe(notify.TopicEmails, func(payload any) error {
		job, err := notify.DecodeJob(payload)
		if err != nil {
			logrus.WithField("error", err).Warn("discarding malformed email job")
			return nil
		}
		if err := sender.Send(job.To, job.Subject, job.HTML); err != nil {
			logrus.WithFields(logrus.Fields{
				"to":    job.To,
				"error": err,
			}).Error("failed to send notification email")
			return err
		}
		logrus.WithField("to", job.To).Info("notification email sent")
		return nil
	})
	if err != nil {
		logrus.Fatalf("failed to register consumer: %v", err)
	}

	logrus.Info("worker running, waiting for messages...")
	select {}
}
