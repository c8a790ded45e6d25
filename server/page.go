package server

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// servePage serves the embedded editor page.
func servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
