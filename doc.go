// Package yandexid is a client SDK for Yandex OAuth and the Yandex ID API.
//
// OAuthClient implements the OAuth 2.0 authorization-code and refresh-token
// flows against https://oauth.yandex.ru: building the authorization URL,
// exchanging a verification code for a token, refreshing and revoking
// tokens. Provider-reported errors map onto a closed taxonomy of sentinel
// errors (ErrInvalidGrant, ErrInvalidClient, ...) that callers match with
// errors.Is.
//
// IDClient fetches the authenticated user's profile from
// https://login.yandex.ru in JSON, XML or JWT form, and AvatarURL formats
// avatar CDN URLs.
//
// Neither client keeps mutable state between calls; both are safe for
// concurrent use.
package yandexid

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// userAgent is sent with every outgoing request.
const userAgent = "go-yandexid/" + Version
