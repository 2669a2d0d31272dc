package resp

// A Response is the data and status code a Responder writes.
type Response struct {
	code int
	data any
	err  error
}

// Fn is a functional option used to build a Response.
type Fn func(*Response)

// Code sets the response status code.
func Code(c int) Fn {
	return func(r *Response) { r.code = c }
}

// Data stores the provided data as the payload of the response.
func Data(d any) Fn {
	return func(r *Response) { r.data = d }
}

// Err sets the error message returned in the response.
func Err(e error) Fn {
	return func(r *Response) { r.err = e }
}
