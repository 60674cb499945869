package filestore

import (
	"encoding/json"
	"net/http"

	"student-records/models"

	"github.com/gorilla/mux"
)

// ServeHTTP handles GET /uploads/{filename} and writes the raw file
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	if !s.Exists(name) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Status: models.StatusError, Message: "File not found"})
		return
	}

	p, _ := s.Path(name)
	http.ServeFile(w, r, p)
}
