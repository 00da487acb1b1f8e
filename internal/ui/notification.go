package ui

import (
	"github.com/godbus/dbus/v5"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogInfo  = "dialog-information"
	IconDialogWarn  = "dialog-warning"

	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2

	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsMethod = "org.freedesktop.Notifications.Notify"
	appName             = "tt-riingd"
	expireTimeoutMillis = int32(5000)
)

func NotifyInfo(title, text string) {
	NotifySend(UrgencyLow, title, text, IconDialogInfo)
}

func NotifyWarn(title, text string) {
	NotifySend(UrgencyNormal, title, text, IconDialogWarn)
}

func NotifyError(title, text string) {
	NotifySend(UrgencyCritical, title, text, IconDialogError)
}

// ErrorAndNotify logs the error and additionally shows it as a desktop notification.
func ErrorAndNotify(title string, format string, a ...interface{}) {
	Error(format, a...)
	NotifyError(title, Sprintf(format, a...))
}

// WarningAndNotify logs the warning and additionally shows it as a desktop notification.
func WarningAndNotify(title string, format string, a ...interface{}) {
	Warning(format, a...)
	NotifyWarn(title, Sprintf(format, a...))
}

// NotifySend shows a desktop notification through the session bus notification service.
// Missing session buses (e.g. when running as a system service) are only logged.
func NotifySend(urgency byte, title, text, icon string) {
	conn, err := dbus.SessionBus()
	if err != nil {
		Debug("Cannot send notification, no session bus available: %v", err)
		return
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}
	obj := conn.Object(notificationsDest, notificationsPath)
	call := obj.Call(notificationsMethod, 0,
		appName,
		uint32(0),
		icon,
		title,
		text,
		[]string{},
		hints,
		expireTimeoutMillis,
	)
	if call.Err != nil {
		Warning("Error sending notification: %v", call.Err)
	}
}
