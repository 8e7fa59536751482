package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// BusinessID records the owning business identifier under the key
// "business_id".
func BusinessID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("business_id", id)
}

// Component records the subsystem emitting the log under the key
// "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records a short machine-friendly event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
