package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, message string) error
	IsConfigured() bool
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.WithField("recipient", to)
	if !i.IsConfigured() {
		logger.Warn("email skipped, smtp client is not configured")
		return nil
	}
	if to == "" {
		return nil
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(i.user, to, subject, message))
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, []string{to}, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("email sending failed")
		return err
	}
	logger.Info("email sent")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Hire - %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s\r\n",
		from, to, subject, message)
}
