package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DateKeyLayout is the layout of per-day log keys (DD-MM-YYYY).
const DateKeyLayout = "02-01-2006"
