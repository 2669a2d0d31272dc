/*
Package req provides ergonomics for handling an HTTP request.

Package req parses payloads encoded in query parameters into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct, through "schema" tags.
Second, for validating the payload's data meets requirements, through "validate" tags,
including the "enum" tag package validate registers.

Issues with the payload are reported as validate.ValidationErrors,
which unwrap to enumerate.ErrNotValid.
*/
package req
