// Package api is the HTTP client for the Tilt remote service: API-key
// sign-in, organization listing and selection, program listing and
// multipart program upload. Transport failures surface as *NetworkError
// and non-2xx responses as *StatusError; the client never retries.
package api
