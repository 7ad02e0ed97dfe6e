// Package server exposes the planner over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness and build version
//	POST /api/analyze          schema document in, field tree out
//	POST /api/graph            project in, positioned graph out
//	POST /api/export/{format}  project in, mermaid|dot|svg|png|pdf|json out
//	POST /api/import           AEP payload in, mapped schemas and datasets out
//	POST /api/validate         project in, problems and dangling references out
//
// Every response carries an X-Request-Id (a UUID unless the client sent
// one). Errors are JSON bodies with a code, see [httputil.WriteError].
package server
