// Package web serves the exporter's HTTP endpoints: the Prometheus text
// exposition on /metrics and an HTML landing page on /. Every other path
// is a 404. /metrics never returns an error status for upstream problems;
// those show up as missing series instead, so a monitoring system can tell
// "exporter down" from "upstream down".
package web
