// Package hass talks to a Home Assistant instance over its REST API and
// serves as the engine's calendar, presence, temperature and actuator
// collaborator.
package hass

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/calor-home/calor/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Client struct {
	httpClient *resty.Client
	calendar   string
	logger     *zap.Logger
}

// NewClient builds a client for the given Home Assistant base URL using
// a long-lived access token. calendarEntity is the calendar the heating
// schedule is read from.
func NewClient(baseURL, token, calendarEntity string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		calendar:   calendarEntity,
		logger:     logger,
	}
}

type calendarEventPayload struct {
	Summary string `json:"summary"`
	Start   struct {
		DateTime string `json:"dateTime"`
		Date     string `json:"date"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
		Date     string `json:"date"`
	} `json:"end"`
}

type statePayload struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Events lists calendar events between from and to.
func (c *Client) Events(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	var payload []calendarEventPayload
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("start", from.Format(time.RFC3339)).
		SetQueryParam("end", to.Format(time.RFC3339)).
		SetResult(&payload).
		Get("/api/calendars/" + c.calendar)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar events: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch calendar events: status %d", resp.StatusCode())
	}

	events := make([]domain.CalendarEvent, 0, len(payload))
	for _, ev := range payload {
		start, ok := parseEventTime(ev.Start.DateTime, ev.Start.Date)
		if !ok {
			continue
		}
		end, ok := parseEventTime(ev.End.DateTime, ev.End.Date)
		if !ok {
			continue
		}
		events = append(events, domain.CalendarEvent{
			Title: ev.Summary,
			Start: start,
			End:   end,
		})
	}
	return events, nil
}

// TrackerState reads a device tracker. Unknown and unavailable states
// map to TrackerUnknown.
func (c *Client) TrackerState(ctx context.Context, trackerID string) (domain.TrackerState, error) {
	state, err := c.getState(ctx, trackerID)
	if err != nil {
		return domain.TrackerUnknown, err
	}
	switch state.State {
	case "home":
		return domain.TrackerHome, nil
	case "not_home":
		return domain.TrackerAway, nil
	default:
		return domain.TrackerUnknown, nil
	}
}

// Temperature reads a sensor entity's state as a temperature. Nil with
// nil error when the entity reports unknown or unavailable.
func (c *Client) Temperature(ctx context.Context, entityID string) (*float64, error) {
	state, err := c.getState(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if state.State == "unknown" || state.State == "unavailable" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(state.State, 64)
	if err != nil {
		return nil, nil
	}
	return &value, nil
}

// RadiatorTemperature reads a climate entity's internal sensor from its
// current_temperature attribute.
func (c *Client) RadiatorTemperature(ctx context.Context, entityID string) (*float64, error) {
	state, err := c.getState(ctx, entityID)
	if err != nil {
		return nil, err
	}
	raw, ok := state.Attributes["current_temperature"]
	if !ok || raw == nil {
		return nil, nil
	}
	value, ok := raw.(float64)
	if !ok {
		return nil, nil
	}
	return &value, nil
}

// SetTargetTemperature drives a climate entity's setpoint.
func (c *Client) SetTargetTemperature(ctx context.Context, entityID string, target float64) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"entity_id":   entityID,
			"temperature": target,
		}).
		Post("/api/services/climate/set_temperature")
	if err != nil {
		return fmt.Errorf("set temperature on %s: %w", entityID, err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("set temperature on %s: status %d", entityID, resp.StatusCode())
	}

	c.logger.Debug("radiator target set",
		zap.String("entity", entityID),
		zap.Float64("target", target))
	return nil
}

func (c *Client) getState(ctx context.Context, entityID string) (*statePayload, error) {
	var payload statePayload
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/api/states/" + entityID)
	if err != nil {
		return nil, fmt.Errorf("read state of %s: %w", entityID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("read state of %s: status %d", entityID, resp.StatusCode())
	}
	return &payload, nil
}

// parseEventTime handles both timed (dateTime) and all-day (date)
// calendar entries.
func parseEventTime(dateTime, date string) (time.Time, bool) {
	if dateTime != "" {
		t, err := time.Parse(time.RFC3339, dateTime)
		if err == nil {
			return t, true
		}
	}
	if date != "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
