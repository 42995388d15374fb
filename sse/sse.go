// Package sse carries AG-UI events over Server-Sent Events.
//
// Reader parses an SSE body into a pull-based [agui.Stream], Writer frames
// events as "data: <json>" records, and Client runs a remote agent over HTTP.
// Event payloads use the wire form of the json package.
package sse

// ContentType is the media type of an SSE response.
const ContentType = "text/event-stream"
