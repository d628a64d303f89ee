// Package web embeds the browser assets served by the API.
package web

import _ "embed"

// TrackerJS is the classic script-tag build of the tracking snippet.
//
//go:embed tracker.js
var TrackerJS []byte

// TrackerESM is the ES module build of the tracking snippet.
//
//go:embed tracker.esm.js
var TrackerESM []byte
