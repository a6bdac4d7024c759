package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/klokku/hackathons/pkg/hackathon"
	log "github.com/sirupsen/logrus"
)

var ErrCalDAVNotConfigured = errors.New("caldav endpoint and calendar must be configured")

// Publisher uploads hackathons to a CalDAV collection, one <id>.ics object per hackathon.
// Uploading the same hackathon again overwrites its object.
type Publisher struct {
	client       *webdav.Client
	calendarPath string
	clock        utils.Clock
}

// basicAuthTransport signs every request sent to the CalDAV server.
type basicAuthTransport struct {
	username  string
	password  string
	transport http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.username != "" {
		req.SetBasicAuth(t.username, t.password)
	}
	req.Header.Set("User-Agent", "hackathons/1.0")
	return t.transport.RoundTrip(req)
}

// NewPublisher connects to cfg.Endpoint. A nil transport means http.DefaultTransport.
func NewPublisher(cfg config.CalDAV, transport http.RoundTripper, clock utils.Clock) (*Publisher, error) {
	if cfg.Endpoint == "" || cfg.Calendar == "" {
		return nil, ErrCalDAVNotConfigured
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &basicAuthTransport{
			username:  cfg.Username,
			password:  cfg.Password,
			transport: transport,
		},
	}
	client, err := webdav.NewClient(httpClient, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdav client: %w", err)
	}
	return &Publisher{client: client, calendarPath: cfg.Calendar, clock: clock}, nil
}

// Publish uploads every hackathon and returns how many were written before the first failure.
func (p *Publisher) Publish(ctx context.Context, hackathons []hackathon.Hackathon) (int, error) {
	stamp := p.clock.Now()
	for i, h := range hackathons {
		if err := p.publishOne(ctx, h, stamp); err != nil {
			return i, fmt.Errorf("failed to publish %q: %w", h.Name, err)
		}
		log.Debugf("Published hackathon %q to %s", h.Name, p.calendarPath)
	}
	return len(hackathons), nil
}

func (p *Publisher) publishOne(ctx context.Context, h hackathon.Hackathon, stamp time.Time) error {
	objectPath := path.Join(p.calendarPath, h.Id+".ics")
	writer, err := p.client.Create(ctx, objectPath)
	if err != nil {
		return fmt.Errorf("failed to create calendar object: %w", err)
	}
	if err := ical.NewEncoder(writer).Encode(NewCalendar([]hackathon.Hackathon{h}, stamp)); err != nil {
		writer.Close()
		return fmt.Errorf("failed to encode calendar object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to upload calendar object: %w", err)
	}
	return nil
}
