/*
Package observability turns search hooks into Prometheus metrics and
structured log lines.

Both return a domain.SearchHooks value; combine them with domain.ChainHooks
and pass the result to arbor.WithHooks.
*/
package observability
