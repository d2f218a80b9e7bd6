package autofill

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Error texts returned by Handler.
const (
	MessageNoIdentifier = "No DOI provided."
	MessageNotFound     = "Metadata not found for provided DOI."
)

// Records maps an identifier to the fields returned for it.
type Records map[string]map[string]string

// Handler serves the lookup contract from records. It answers POST requests
// whose JSON body carries the identifier under param: 200 with
// {"fields": {...}} on a hit, 404 with {"error": "..."} on a miss.
func Handler(records Records, param string) http.Handler {
	param = orDefault(param, DefaultParam)
	normalized := make(Records, len(records))
	for id, fields := range records {
		normalized[strings.TrimSpace(id)] = fields
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, lookupResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
			return
		}

		var body map[string]any
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, lookupResponse{Error: "Invalid JSON body."})
			return
		}
		identifier, _ := body[param].(string)
		identifier = strings.TrimSpace(identifier)
		if identifier == "" {
			writeJSON(w, http.StatusBadRequest, lookupResponse{Error: MessageNoIdentifier})
			return
		}

		fields, ok := normalized[identifier]
		if !ok {
			writeJSON(w, http.StatusNotFound, lookupResponse{Error: MessageNotFound})
			return
		}
		out := make(map[string]any, len(fields))
		for name, value := range fields {
			out[name] = value
		}
		writeJSON(w, http.StatusOK, lookupResponse{Fields: out})
	})
}

func writeJSON(w http.ResponseWriter, code int, payload lookupResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
