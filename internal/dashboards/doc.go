// Package dashboards fetches and decodes the OpenSearch Dashboards status
// and stats API documents.
//
// A Client issues one GET per document against /api/status and /api/stats,
// decoding the JSON bodies into StatusDocument and StatsDocument. Both
// fetches are independent: an error from one never affects the other, and
// any transport failure, non-200 response, or undecodable body surfaces as
// an error rather than a partial document.
//
// Numeric stats fields are pointers so that a field absent from the
// upstream payload is distinguishable from a reported zero. Health states
// map onto the shared green/yellow/red scale through LevelOf.
package dashboards
