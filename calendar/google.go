package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"slotify/models"
)

const maxReadRetries = 3

// GoogleConfig configures the Google Calendar gateway. Exactly one of
// CredentialsFile or CredentialsJSON must be set; CredentialsJSON is parsed
// by the client library as structured data.
type GoogleConfig struct {
	CalendarID      string
	CredentialsFile string
	CredentialsJSON []byte
	Timeout         time.Duration
}

// GoogleGateway implements Gateway on the Google Calendar v3 API.
type GoogleGateway struct {
	svc        *gcal.Service
	calendarID string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewGoogleGateway builds the gateway once at startup; the service client is
// safe for reuse across requests.
func NewGoogleGateway(ctx context.Context, cfg GoogleConfig, logger *zap.Logger) (*GoogleGateway, error) {
	if cfg.CalendarID == "" {
		return nil, errors.New("calendar: calendar id is required")
	}

	var opts []option.ClientOption
	switch {
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	default:
		return nil, errors.New("calendar: no credentials configured")
	}
	opts = append(opts, option.WithScopes(gcal.CalendarScope))

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to build service: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GoogleGateway{
		svc:        svc,
		calendarID: cfg.CalendarID,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// ListBusyIntervals queries FreeBusy for the whole range in a single round
// trip; callers filter slots in memory rather than probing slot by slot.
func (g *GoogleGateway) ListBusyIntervals(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := &gcal.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}

	var resp *gcal.FreeBusyResponse
	err := g.retryRead(ctx, "freebusy.query", func() error {
		var err error
		resp, err = g.svc.Freebusy.Query(req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("calendar: freebusy query failed: %w", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, fmt.Errorf("calendar: freebusy response missing calendar %s", g.calendarID)
	}

	busy := make([]models.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("calendar: bad busy start %q: %w", period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("calendar: bad busy end %q: %w", period.End, err)
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy, nil
}

func (g *GoogleGateway) ListEvents(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var resp *gcal.Events
	err := g.retryRead(ctx, "events.list", func() error {
		var err error
		resp, err = g.svc.Events.List(g.calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("calendar: events list failed: %w", err)
	}

	events := make([]models.Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		// All-day events carry a date instead of a datetime; they have no
		// slot-level window to match against.
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			g.logger.Warn("skipping event with bad start", zap.String("eventID", item.Id), zap.Error(err))
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			g.logger.Warn("skipping event with bad end", zap.String("eventID", item.Id), zap.Error(err))
			continue
		}
		events = append(events, models.Event{
			ID:      item.Id,
			Window:  models.TimeWindow{Start: start, End: end},
			Summary: item.Summary,
		})
	}
	return events, nil
}

// CreateEvent is a write and is never retried here; ambiguous failures are
// resolved by the caller's idempotency key, not by blind resubmission.
func (g *GoogleGateway) CreateEvent(ctx context.Context, input models.EventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	event := &gcal.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &gcal.EventDateTime{
			DateTime: input.Window.Start.Format(time.RFC3339),
			TimeZone: input.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: input.Window.End.Format(time.RFC3339),
			TimeZone: input.Timezone,
		},
	}
	if input.BookingRef != "" {
		event.ExtendedProperties = &gcal.EventExtendedProperties{
			Private: map[string]string{"bookingRef": input.BookingRef},
		}
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		if apiStatus(err) == http.StatusConflict {
			return "", ErrConflict
		}
		return "", fmt.Errorf("calendar: event insert failed: %w", err)
	}
	return created.Id, nil
}

func (g *GoogleGateway) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	err := g.svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		switch apiStatus(err) {
		case http.StatusNotFound, http.StatusGone:
			return ErrEventNotFound
		}
		return fmt.Errorf("calendar: event delete failed: %w", err)
	}
	return nil
}

func (g *GoogleGateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.svc.Calendars.Get(g.calendarID).Context(ctx).Do()
	return err
}

// retryRead retries transient provider failures with exponential backoff.
// Only reads go through here.
func (g *GoogleGateway) retryRead(ctx context.Context, op string, call func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxReadRetries), ctx)
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := call()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		g.logger.Warn("transient calendar error, retrying",
			zap.String("op", op), zap.Int("attempt", attempt), zap.Error(err))
		return err
	}, policy)
}

func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	// Network-level failures have no status code; treat them as transient.
	return true
}

func apiStatus(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
