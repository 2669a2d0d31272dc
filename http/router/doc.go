/*
Package router routes HTTP requests for enumerations to their handlers.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [*Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Router and then the Route are called in the order they appear.
*/
package router
