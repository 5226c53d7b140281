package yandexid

import "log/slog"

// Warning codes emitted by the clients.
const (
	// WarningCodeUnknownDevice: device_id was given without device_name, so
	// Yandex will issue the token for an unknown device.
	WarningCodeUnknownDevice = "unknown_device"

	// WarningCodeDeviceNameIgnored: device_name was given without device_id
	// and will be ignored by Yandex.
	WarningCodeDeviceNameIgnored = "device_name_ignored"

	// WarningCodeOptionalScopeIgnored: optional_scope items outside the
	// granted scope will be ignored by Yandex.
	WarningCodeOptionalScopeIgnored = "optional_scope_ignored"

	// WarningCodeInsecureJWTSecret: a jwt_secret was sent as a query
	// parameter, which Yandex recommends against.
	WarningCodeInsecureJWTSecret = "insecure_jwt_secret"
)

// Warning is a non-fatal diagnostic emitted during a call. Warnings never
// abort the operation that produced them.
type Warning struct {
	Code    string
	Message string
}

// WarnFunc receives warnings as they are emitted. Implementations must be
// safe for concurrent use; the clients may call them from concurrent
// operations.
type WarnFunc func(Warning)

// slogWarnFunc is the default warning sink: structured logging at Warn level.
func slogWarnFunc(logger *slog.Logger) WarnFunc {
	return func(w Warning) {
		logger.Warn(w.Message, "warning", w.Code)
	}
}
