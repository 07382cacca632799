/*
Package hdlrest implements handler.Handler against the Handle.net (CNRI)
REST API of a handle server.

Endpoints:

	PUT    /api/handles/{prefix}/{suffix}?overwrite=false       mint
	GET    /api/handles/{prefix}/{suffix}                       read
	PUT    /api/handles/{prefix}/{suffix}?overwrite=true&index=N update the URL value
	DELETE /api/handles/{prefix}/{suffix}                       delete

Every request carries HTTP Basic credentials built from the configured admin
username and password. Minting sends a single URL value at index 1; updates
look up the current URL index first so HS_ADMIN and other values stay in
place.

Status mapping:

	404 / responseCode 100   errors.ErrNotFound
	409 / responseCode 101   errors.ErrAlreadyExists
	anything else non-1      errors.ErrServiceFailure (*errors.ServiceError)

Each request runs in an OpenTelemetry span named "hdlrest.<op>".

The backend registers itself as "rest". Package hdltest provides a fake
server for tests.
*/
package hdlrest
