package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"abstract-portal/models"

	gomail "gopkg.in/gomail.v2"
)

// NotificationService delivers outbound email after the database write has
// already returned. Delivery runs on its own goroutine; a dead SMTP server
// can never roll back or delay a submission or a status change.
type NotificationService interface {
	NotifySubmissionReceived(abstract *models.Abstract, recipient string)
	NotifyStatusChange(abstract *models.Abstract)
}

type notificationService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewNotificationService() NotificationService {
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}
	return &notificationService{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (s *notificationService) NotifySubmissionReceived(abstract *models.Abstract, recipient string) {
	if recipient == "" {
		log.Println("Submission confirmation skipped: no recipient for abstract", abstract.ID)
		return
	}

	subject := "Abstract Submission Received - " + abstract.AbstractNumber
	body := fmt.Sprintf(
		"Dear %s,\n\nYour abstract %q has been received and assigned number %s.\nPresentation type: %s\nCategory: %s\n\nYou will be notified once the review is complete.\n",
		abstract.PresenterName, abstract.Title, abstract.AbstractNumber,
		abstract.PresentationType, abstract.Category)

	s.send(recipient, subject, body)
}

func (s *notificationService) NotifyStatusChange(abstract *models.Abstract) {
	if abstract.User == nil || abstract.User.Email == "" {
		log.Println("Status notification skipped: no submitter email for abstract", abstract.ID)
		return
	}

	subject := fmt.Sprintf("Abstract %s Review Update: %s", abstract.AbstractNumber, abstract.Status)
	body := fmt.Sprintf(
		"Dear %s,\n\nThe review status of your abstract %q (%s) is now: %s.\n",
		abstract.PresenterName, abstract.Title, abstract.AbstractNumber, abstract.Status)
	if abstract.ReviewerComments != nil && *abstract.ReviewerComments != "" {
		body += "\nReviewer comments:\n" + *abstract.ReviewerComments + "\n"
	}

	s.send(abstract.User.Email, subject, body)
}

// send is fire-and-forget: failures are logged and never surfaced.
func (s *notificationService) send(to, subject, body string) {
	if s.host == "" {
		log.Println("SMTP not configured, skipping email to", to)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	go func() {
		d := gomail.NewDialer(s.host, s.port, s.username, s.password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Failed to send email to %s: %v", to, err)
		}
	}()
}
