// Package analysis holds the read-only queries the dashboard runs over a
// loaded dataset: filters, top-N, frequency counts, summary metrics, the
// rating histogram and text search. Every function takes rows by value and
// never mutates the caller's slice.
package analysis
