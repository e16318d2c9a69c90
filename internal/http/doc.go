// Package http exposes the CRM query services as a JSON API on a chi router.
//
// The router exposes the following endpoints:
//   - GET /healthz: liveness probe, no session required.
//   - POST /sessions: demo login. Body: {"email","password"}; any non-empty
//     pair is accepted. Response: {"token","email","expires_at","welcome"} with
//     the token also surfaced via the `X-Session-Token` header and a
//     `session_token` cookie.
//   - DELETE /sessions/current: revokes the token from the Authorization
//     header or session cookie. Returns 204 No Content and clears the cookie.
//   - GET /clients?q=&type=, GET /clients/{id}: client list with interest
//     metrics and the client detail joins (activities, owned and purchased
//     properties, offers).
//   - GET /properties?q=&status=&sort=, GET /properties/{id}: property list and
//     the property detail with agent, owner, buyer, offers and viewings.
//   - GET /colleagues?q=&office=, GET /colleagues/{id}, GET /colleagues/{id}/stats:
//     colleague directory and per-agent listing counts.
//   - GET /rooms?office=, GET /rooms/{id}, GET /rooms/{id}/bookings,
//     POST /rooms/{id}/booking-drafts, GET /booking-slots?start=&end=: meeting
//     rooms, their bookings and the booking form helpers.
//   - GET /calendar?from=&to=&type=: activities and bookings in a window.
//   - GET /search?q=: header search across clients and properties.
//   - GET /dashboard: landing page figures.
//
// Money is rendered in Swedish kronor and times in the office time zone;
// DTOs carry both the raw and the formatted value. Request/response DTOs live
// in dto.go and alongside their handlers.
package http
