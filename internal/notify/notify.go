package notify

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wishwell/wishwell-backend/internal/model"
	"github.com/wishwell/wishwell-backend/internal/queue"
)

// TopicEmails is the queue topic carrying rendered notification emails.
const TopicEmails = "notification_emails"

// EmailJob is one rendered email waiting to be sent.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Dispatcher turns campaign events into email jobs. It is strictly
// best-effort: publish failures are logged and never reach the caller, so a
// broken broker cannot fail campaign creation.
type Dispatcher struct {
	Queue   queue.Queue
	BaseURL string
}

// Notify sends the gatherer a confirmation (skipped when the gatherer has
// no email) and one invitation per address in invitees. Callers pass the
// full invite list on creation and only the newly added delta on
// re-invitation, so existing invitees are never mailed twice.
func (d *Dispatcher) Notify(campaign *model.Campaign, invitees []string) {
	if campaign.Gatherer.Email != "" {
		d.publish(EmailJob{
			To:      campaign.Gatherer.Email,
			Subject: "Birthday Campaign Created Successfully",
			HTML:    gathererBody(campaign),
		})
	}
	for _, email := range invitees {
		d.publish(EmailJob{
			To:      email,
			Subject: fmt.Sprintf("Contribute to %s's Birthday Wishes", campaign.BirthdayPerson.Name),
			HTML:    inviteBody(campaign, d.BaseURL),
		})
	}
}

func (d *Dispatcher) publish(job EmailJob) {
	if err := d.Queue.Publish(TopicEmails, job); err != nil {
		logrus.WithFields(logrus.Fields{
			"to":    job.To,
			"error": err,
		}).Error("failed to enqueue notification email")
	}
}

func gathererBody(c *model.Campaign) string {
	return fmt.Sprintf(`
    <h1>Your Birthday Campaign for %s has been created!</h1>
    <p>You can now start collecting birthday wishes from friends and family.</p>
    <p>We'll notify the invited people to submit their wishes.</p>
    `, c.BirthdayPerson.Name)
}

func inviteBody(c *model.Campaign, baseURL string) string {
	return fmt.Sprintf(`
    <h1>You're invited to share birthday wishes!</h1>
    <p>%s has invited you to contribute to %s's birthday wishes.</p>
    <p>Click the link below to submit your message and/or photo:</p>
    <a href="%s/upload/%s">Submit Your Birthday Wish</a>
    `, c.Gatherer.Name, c.BirthdayPerson.Name, baseURL, c.ID)
}

// StartEmailSubscriber consumes email jobs and hands them to sender. Send
// failures are returned to the queue for its retry policy; a failure for one
// recipient never affects jobs for other recipients.
func StartEmailSubscriber(q queue.Queue, sender EmailSender) {
	go func() {
		err := q.Subscribe(TopicEmails, func(payload any) error {
			job, err := DecodeJob(payload)
			if err != nil {
				logrus.WithField("error", err).Warn("discarding malformed email job")
				return nil // junk, no retry
			}
			if err := sender.Send(job.To, job.Subject, job.HTML); err != nil {
				logrus.WithFields(logrus.Fields{
					"to":    job.To,
					"error": err,
				}).Error("failed to send notification email")
				return err
			}
			return nil
		})
		if err != nil {
			logrus.WithField("error", err).Error("failed to subscribe for email jobs")
		}
	}()
}

// DecodeJob accepts the in-memory payload form (EmailJob) and the wire form
// ([]byte of JSON) used by the AMQP queue.
func DecodeJob(payload any) (EmailJob, error) {
	switch p := payload.(type) {
	case EmailJob:
		return p, nil
	case []byte:
		var job EmailJob
		if err := json.Unmarshal(p, &job); err != nil {
			return EmailJob{}, err
		}
		return job, nil
	default:
		return EmailJob{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}
