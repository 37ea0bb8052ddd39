package users

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jinsdrum/petplace/transport"
	"github.com/pkg/errors"
)

// Notification is a user notification as returned by the backend.
type Notification struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Message           string         `json:"message"`
	NotificationType  string         `json:"notification_type"`
	Priority          string         `json:"priority,omitempty"`
	RelatedEntityType string         `json:"related_entity_type,omitempty"`
	RelatedEntityID   int64          `json:"related_entity_id,omitempty"`
	ActionURL         string         `json:"action_url,omitempty"`
	ActionText        string         `json:"action_text,omitempty"`
	IsRead            bool           `json:"is_read"`
	ExtraData         map[string]any `json:"extra_data,omitempty"`
	CreatedAt         string         `json:"created_at,omitempty"`
	ReadAt            string         `json:"read_at,omitempty"`
	ExpiresAt         string         `json:"expires_at,omitempty"`
}

// NotificationList is the paginated notification listing.
type NotificationList struct {
	Notifications []Notification       `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
	Pagination    transport.Pagination `json:"pagination"`
}

// NotificationParams filters the notification listing.
type NotificationParams struct {
	UnreadOnly bool
	Type       string
	Page       int
	PerPage    int
}

func (p NotificationParams) values() url.Values {
	v := url.Values{}
	if p.UnreadOnly {
		v.Set("unread_only", "true")
	}
	if p.Type != "" {
		v.Set("type", p.Type)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return v
}

// DashboardCounts aggregates per-status entity counts on the dashboard.
type DashboardCounts map[string]int

// Dashboard is the server-computed dashboard summary for the current user.
type Dashboard struct {
	User                *Profile                   `json:"user"`
	Stats               map[string]DashboardCounts `json:"stats"`
	UnreadNotifications int                        `json:"unread_notifications"`
}

// Service exposes the user-scoped endpoints outside the auth lifecycle:
// public profiles, the dashboard, notifications and settings.
type Service struct {
	api *transport.AuthClient
}

// NewService creates a user Service on top of the authenticated pipeline.
func NewService(api *transport.AuthClient) *Service {
	return &Service{api: api}
}

// Profile fetches another user's public profile.
func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	var out Profile
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/users/profile/" + strconv.FormatInt(userID, 10),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Profile] fetching profile")
	}
	return &out, nil
}

// Dashboard fetches the current user's dashboard summary.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/users/dashboard",
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Dashboard] fetching dashboard")
	}
	return &out, nil
}

// Notifications lists the current user's notifications.
func (s *Service) Notifications(ctx context.Context, params NotificationParams) (*NotificationList, error) {
	var out NotificationList
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/users/notifications",
		Query:  params.values(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Notifications] listing notifications")
	}
	return &out, nil
}

// MarkNotificationRead marks a single notification as read.
func (s *Service) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/users/notifications/" + strconv.FormatInt(notificationID, 10) + "/read",
	}, nil)
	return errors.Wrap(err, "[Service.MarkNotificationRead] marking notification")
}

// MarkAllNotificationsRead marks every unread notification as read and
// returns how many were updated.
func (s *Service) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	var out struct {
		UpdatedCount int `json:"updated_count"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/users/notifications/read-all",
	}, &out)
	if err != nil {
		return 0, errors.Wrap(err, "[Service.MarkAllNotificationsRead] marking notifications")
	}
	return out.UpdatedCount, nil
}

// Settings fetches the current user's settings document.
func (s *Service) Settings(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/users/settings",
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Settings] fetching settings")
	}
	return out, nil
}

// UpdateSettings overwrites the given settings fields.
func (s *Service) UpdateSettings(ctx context.Context, settings map[string]any) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/users/settings",
		Body:   settings,
	}, nil)
	return errors.Wrap(err, "[Service.UpdateSettings] updating settings")
}
