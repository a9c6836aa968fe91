// Package server streams a fixture's host mutations to live preview
// clients over WebSocket.
//
// Every connection gets its own fixture.Session. The server applies the
// first step, sends a snapshot frame with the container markup (elements
// annotated with data-rid node ids), and then answers each event frame
// with one mutation batch frame. An event named "next" with target 0
// advances the fixture; any other event is dispatched to the host node it
// targets. With Config.StepInterval set, the server also advances the
// fixture on a timer.
//
// Routes:
//
//	GET /          HTML page of the first step
//	GET /stream    WebSocket mutation stream (Config.Path)
//	GET /healthz   liveness probe
//	GET /metrics   Prometheus metrics, when configured with WithMetrics
package server
