// Package api contains the HTTP handlers, request models, and error mapping
// for the contacts directory. Each resource (/users, /contacts,
// /phone-numbers) gets a handler with method-based dispatch; identification is
// by query parameter. Responses use the {success, message?, data?, errors?}
// envelope defined in the shared subpackage.
package api
