// Package server is the browser front-end of Vibe-Tagger.
//
// It serves a single embedded page and a small JSON API. Every browser gets
// its own session (a UUID cookie) backed by an app.Controller, so the state
// machine is the same one the terminal UI drives. Sessions live in memory
// for the lifetime of the process.
//
// # Routes
//
//	GET  /            embedded UI
//	GET  /healthz     liveness, version and session count
//	GET  /api/state   current session state
//	POST /api/image   multipart upload, field "file"
//	POST /api/generate  dispatch an analysis (202, or 409 if nothing to do)
//	POST /api/reset   back to the initial state
//	GET  /api/ws      WebSocket pushing the state after every transition
//
// State is always sent as:
//
//	{"phase": "resolved", "image": "data:...", "loading": false,
//	 "result": {"vibe": "...", "captions": [...], "hashtags": [...]},
//	 "error": ""}
//
// An upload with a non-image type answers 422 with the validation message;
// an upload while an analysis runs answers 409.
//
// # WebSocket
//
// Connections use gorilla/websocket with the usual ping/pong keepalive.
// Notifications are coalesced so a slow client always receives the latest
// state rather than every intermediate one.
//
// # Discovery
//
// With Config.Advertise set the server announces itself over mDNS as
// _vibetagger._tcp (see package discovery) until shutdown.
//
// # Usage
//
//	srv, err := server.New(&server.Config{Host: "0.0.0.0", Port: 8080}, client)
//	if err != nil {
//	    return err
//	}
//	return srv.Start() // blocks until SIGINT/SIGTERM
package server
