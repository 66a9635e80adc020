// Package validation binds request data and checks it.
//
// Rules live in struct tags and are enforced with the `validator`
// library. Failures are reported per field under the name the client
// sent (query, path or JSON key) so they can be shown next to the input.
package validation
