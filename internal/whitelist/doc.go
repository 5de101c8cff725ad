// Package whitelist implements the private message allow-list service.
//
// The Interceptor runs for every inbound private message and asks the
// filter.Classifier whether to deliver it, reject it with an automated reply,
// or drop it silently. The Admin mutates the persisted list and keeps the
// session's suppression set consistent with it. The Dispatcher maps the
// add/del/view command surface onto the Admin.
//
// Nothing here knows about a particular chat network: side effects go
// through the Host and Notifier interfaces implemented by the caller.
package whitelist
