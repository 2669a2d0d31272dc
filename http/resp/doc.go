/*
The resp package provides a high-level API for responding to HTTP requests
with JSON, configured application-wide through a [*Responder].

Errors wrapping the enumerate sentinel errors map onto HTTP status codes,
so handlers can pass errors straight through to [Responder.Err].
*/
package resp
