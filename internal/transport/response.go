package transport

import (
	"encoding/json"
	"net/http"
)

// Every route answers the {success, message, data, error} envelope. Helpers
// build maps rather than one struct so that empty lists stay "data": [] and
// absent fields stay absent.

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteRaw sends an already-encoded JSON payload, e.g. a cached listing.
func WriteRaw(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, map[string]interface{}{"success": true, "data": data})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{"success": true, "message": message})
}

func WriteMessageData(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, map[string]interface{}{"success": true, "message": message, "data": data})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]interface{}{"success": false, "message": message})
}

// WriteErrorDetail echoes the upstream error string into the body. The admin
// portal reads it, so the disclosure stays.
func WriteErrorDetail(w http.ResponseWriter, status int, message string, err error) {
	payload := map[string]interface{}{"success": false, "message": message}
	if err != nil {
		payload["error"] = err.Error()
	}
	WriteJSON(w, status, payload)
}
