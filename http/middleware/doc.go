/*
The middleware package defines what a middleware is and the set of middlewares
wrapping the enumerations HTTP handler.

The available middlewares are:
- Compress
- CORS
- LogRequest
- Recover

The handler package chains them in this order:

	adpts := []middleware.Adapter{
		middleware.Recover(log),
		middleware.LogRequest(log),
		middleware.Compress(),
		middleware.CORS(origins...),
	}
*/
package middleware
