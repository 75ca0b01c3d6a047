// Package zendesk is a thin client for the Zendesk REST API v2.
//
// Every logical operation maps to exactly one authenticated HTTP call made
// through Client.Do. Responses are returned as raw JSON so callers can render
// them verbatim. The client never retries, caches or rate limits.
//
// Missing credentials are reported per call as a *ConfigError before any
// network I/O; non-2xx responses become *UpstreamError carrying the status
// code and body. Transport failures are wrapped so errors.As still finds the
// underlying *url.Error.
package zendesk
