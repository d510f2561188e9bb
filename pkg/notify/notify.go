// Package notify sends desktop notifications over the session D-Bus using
// the org.freedesktop.Notifications interface.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	notifyCall = "org.freedesktop.Notifications.Notify"
)

// Urgency represents notification priority levels per the freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title   string  // summary text (required)
	Body    string  // body text (optional)
	Icon    string  // icon name or path (optional)
	Timeout int32   // ms, -1 = server default, 0 = never expire
	Urgency Urgency // Low, Normal, Critical
}

// caller is the slice of dbus.BusObject the notifier needs; tests substitute
// a fake.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Notifier sends desktop notifications. The zero value is not usable; use
// New, or NewWithObject in tests.
type Notifier struct {
	obj     caller
	appName string
	logger  *slog.Logger
}

// New connects to the session bus and returns a notifier. A connection
// failure here is fatal for the bar: the battery alert and the audio
// subsystem both depend on the notification sink.
func New(appName string, logger *slog.Logger) (*Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return NewWithObject(conn.Object(busName, objectPath), appName, logger), nil
}

// NewWithObject builds a notifier around an existing bus object.
func NewWithObject(obj caller, appName string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{obj: obj, appName: appName, logger: logger}
}

// Notify sends a notification and returns the server-assigned ID.
func (n *Notifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(notif.Urgency)),
	}
	call := n.obj.Call(notifyCall, 0,
		n.appName,
		uint32(0), // replaces nothing
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{}, // no actions
		hints,
		notif.Timeout,
	)
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify %q: %w", notif.Title, err)
	}
	return id, nil
}

// Send is the fire-and-forget variant: a failed notification is logged and
// otherwise ignored. Callers use it where a notification is best-effort and
// must never escalate into the caller's own error handling.
func (n *Notifier) Send(title, body, icon string, urgency Urgency) {
	_, err := n.Notify(Notification{
		Title:   title,
		Body:    body,
		Icon:    icon,
		Timeout: -1,
		Urgency: urgency,
	})
	if err != nil {
		n.logger.Warn("notification failed", "title", title, "error", err)
	}
}
