package common

// AuthorizationHeaderName is the HTTP header / gRPC metadata key that
// carries the bearer credential on inbound requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the scheme prefix expected on the authorization header
// value, including the trailing space.
const BearerPrefix = "Bearer "
