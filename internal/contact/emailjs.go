package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio/pkg/errors"
	"portfolio/pkg/utils"
)

const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS sends through the EmailJS REST API.
type EmailJS struct {
	HTTP       *http.Client
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Logger     *zap.Logger
}

func NewEmailJS(cfg utils.EmailJSConfig, timeout time.Duration, logger *zap.Logger) *EmailJS {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEmailJSEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailJS{
		HTTP:       &http.Client{Timeout: timeout},
		Endpoint:   endpoint,
		ServiceID:  cfg.ServiceID,
		TemplateID: cfg.TemplateID,
		PublicKey:  cfg.PublicKey,
		Logger:     logger,
	}
}

func (e *EmailJS) Mode() string { return utils.ContactModeEmailJS }

type emailJSRequest struct {
	ServiceID      string  `json:"service_id"`
	TemplateID     string  `json:"template_id"`
	UserID         string  `json:"user_id"`
	TemplateParams Payload `json:"template_params"`
}

func (e *EmailJS) Deliver(ctx context.Context, p Payload) (Outcome, error) {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      e.ServiceID,
		TemplateID:     e.TemplateID,
		UserID:         e.PublicKey,
		TemplateParams: p,
	})
	if err != nil {
		return Outcome{}, errors.NewSubmissionError("could not encode the message", e.Mode(), 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, errors.NewSubmissionError("could not build the email request", e.Mode(), 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTP.Do(req)
	if err != nil {
		e.Logger.Warn("Email provider unreachable", zap.Error(err))
		return Outcome{}, errors.NewSubmissionError("could not reach the email provider", e.Mode(), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.Logger.Warn("Email provider rejected the message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(text))),
		)
		return Outcome{}, errors.NewSubmissionError(
			fmt.Sprintf("email provider responded with status %d", resp.StatusCode),
			e.Mode(), resp.StatusCode, nil,
		)
	}
	return Outcome{Status: StatusSent}, nil
}
