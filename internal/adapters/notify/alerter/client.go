package alerter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"whoofsy-server/internal/platform/httpclient"
	"whoofsy-server/internal/platform/logger"
	"whoofsy-server/internal/ports/notify"
)

var ErrAlerterUpstream = errors.New("alerter upstream error")

// Config del despachador de alertas.
// BaseURL/APIKey vienen de env; sin BaseURL el adapter queda en modo stub
// (solo loguea), que es el default del MVP: la entrega real de email/push
// es un collaborator externo.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
	log          logger.Logger
}

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		log:          log,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

type alertPayload struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Code    string `json:"code"`
	OwnerID string `json:"owner_id"`
	PetID   string `json:"pet_id,omitempty"`
	GPS     struct {
		Lat      *float64 `json:"lat"`
		Lng      *float64 `json:"lng"`
		Accuracy *float64 `json:"accuracy"`
	} `json:"gps"`
}

// SendScanAlert manda la alerta al upstream de notificaciones.
// Sin upstream configurado solo deja rastro en el log y responde ok:
// el resolver trata la entrega como best-effort igual.
func (c *Client) SendScanAlert(ctx context.Context, a notify.ScanAlert) error {
	if !c.IsConfigured() {
		if c.log != nil {
			c.log.Info("scan alert (stub, no upstream configured)", map[string]any{
				"code":     a.Code,
				"owner_id": a.OwnerID,
			})
		}
		return nil
	}

	var p alertPayload
	p.Type = "scan_alert"
	p.Channel = "email"
	p.Code = a.Code
	p.OwnerID = a.OwnerID
	p.PetID = a.PetID
	p.GPS.Lat = a.Lat
	p.GPS.Lng = a.Lng
	p.GPS.Accuracy = a.Accuracy

	headers := map[string]string{}
	if c.apiKey != "" {
		headers[c.apiKeyHeader] = c.apiKey
	}

	if err := c.http.DoJSON(ctx, "POST", "/v1/alerts", headers, p, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrAlerterUpstream, err)
	}
	return nil
}
