// Package wlveil runs a transparent Wayland protocol proxy: it sits
// between a client and the real compositor, decoding enough of the
// wire protocol to enforce a per-interface forwarding policy, and
// relays everything else byte-for-byte.
//
// # Architecture
//
// internal/wire implements the Wayland wire codec (message framing,
// argument encoding/decoding, fd passing). internal/endpoint wraps one
// end of a Unix socket connection in that codec. internal/object tracks
// one protocol object's identity across the client and server ID
// namespaces and its lifetime state. internal/session owns the object
// registries for a client and the shared upstream connection, including
// the reverse server-ID routing index server events need. internal/
// dispatch walks a decoded message against a per-interface signature
// table and invokes its handler. proto holds the per-interface
// dispatch tables and forwarding stubs; veil wires policy decisions
// (internal/config) on top of proto's tables into the request/event
// loops cmd/wlveil drives.
//
// # Usage
//
// wlveil is meant to run as a wrapper around a client process:
//
//	wlveil --listen /run/user/1000/wlveil-0 -- some-wayland-app
//
// The child process sees WAYLAND_DISPLAY pointed at the proxy's own
// socket; every object it creates is proxied to the real compositor
// named by --upstream (or $WAYLAND_DISPLAY, by default).
package wlveil
