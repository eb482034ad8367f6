package handler

import (
	"net/http"
)

// NotFound answers every path no route claims.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}
