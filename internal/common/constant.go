// Package common contains protocol constants and the error taxonomy shared
// by the transport, client and service layers.
package common

// Defaults of the public SwissTransfer deployment.
const (
	DefaultAPIBaseURL    = "https://www.swisstransfer.com/api"
	DefaultServiceDomain = "www.swisstransfer.com"
	DefaultLanguage      = "en_GB"
)

// Baseline identification headers sent with every request.
const (
	UserAgent = "swisstransfer-webext/1.0"
	Cookie    = "webext=1"
	Referer   = "swish/0.1"
)

// RecaptchaPlaceholder disables the captcha check for extension clients.
const RecaptchaPlaceholder = "nope"

// Messages returned in data.message by the link endpoint.
const (
	MessageNeedPassword  = "need_password"
	MessageWrongPassword = "wrong_password"
	MessageScanPending   = "virus_scan_in_progress"
	MessageInProgress    = "in_progress"
)
