package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/utils"
	"github.com/MKhiriev/go-tool-access/models"
)

type httpMailer struct {
	client *lazyClient
	path   string
	token  string

	logger *logger.Logger
}

// NewHTTPMailer constructs a [Mailer] posting JSON to cfg.MailerURL with
// cfg.MailerToken as a bearer token.
//
// Only the URL is validated here. The resty client is created on the first
// SendMagicLink, so a server that never sends mail never builds one.
func NewHTTPMailer(cfg config.Adapter, logger *logger.Logger) (Mailer, error) {
	baseURL, path, err := splitWebhookURL(cfg.MailerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMailerURL, err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultAdapterTimeout
	}

	return &httpMailer{
		client: newLazyClient(func() (*utils.HTTPClient, error) {
			logger.Debug().Str("func", "NewHTTPMailer").Str("base_url", baseURL).Msg("building mailer http client")
			return utils.NewHTTPClient(baseURL, timeout), nil
		}),
		path:   path,
		token:  strings.TrimSpace(cfg.MailerToken),
		logger: logger,
	}, nil
}

// SendMagicLink implements [Mailer].
func (m *httpMailer) SendMagicLink(ctx context.Context, msg models.MagicLinkMessage) error {
	client, err := m.client.get()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailerUnavailable, err)
	}

	req := client.R().
		SetContext(ctx).
		SetBody(msg)
	if m.token != "" {
		req.SetAuthToken(m.token)
	}

	started := time.Now()
	resp, err := req.Post(m.path)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpMailer.SendMagicLink").Msg("mailer request failed")
		return fmt.Errorf("%w: %w", ErrMailerUnavailable, err)
	}

	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpMailer.SendMagicLink").Msg("mailer answered with error")
		return err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*httpMailer.SendMagicLink").
		Dur("took", time.Since(started)).
		Msg("magic link handed to mailer")

	return nil
}

// splitWebhookURL separates the origin, used as the resty base URL, from the
// request path.
func splitWebhookURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("address must include host")
	}

	path := u.RequestURI()
	if path == "" {
		path = "/"
	}

	return u.Scheme + "://" + u.Host, path, nil
}
