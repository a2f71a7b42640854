// Package app holds the Vibe-Tagger state machine.
//
// A Controller owns one State and applies every transition to it:
//
//	idle ──SelectImage──▶ image_selected ──Generate──▶ analyzing
//	                              ▲                       │
//	                              │            ┌──────────┴─────────┐
//	                              │            ▼                    ▼
//	                              └──────── resolved              failed
//
// Reset returns to idle from anywhere. A non-image file sets the
// validation message without touching the selected image. Generate is a
// no-op without an image or while an analysis is already running.
//
// Selecting an image and analyzing it are both asynchronous. Each returns a
// channel that is closed once the transition has been applied, which the
// front-ends use to refresh and the tests use to wait. Work dispatched
// before a Reset, or before a newer image was selected, is discarded when it
// completes.
//
// Front-ends observe the controller through Subscribe. Listeners get a
// snapshot after every transition, in order.
package app
