package common

// UserIDHeaderName is the HTTP header that carries the opaque id of the user
// on whose behalf a request is made. It is used for attribution only.
const UserIDHeaderName = "X-User-ID"
