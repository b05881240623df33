package server

import (
	"caesar/internal/cipher"
	"caesar/internal/ctxlog"
	"caesar/internal/db"
	"net/http"
	"strconv"
	"time"
)

func writeText(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)+1))
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body + "\n")); err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to write response", "error", err)
	}
}

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeText(w, r, status, http.StatusText(status))
	})
}

func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeText(w, r, http.StatusOK, "ok")
	})
}

// cipherHandler serves GET /cipher?text=...&key=... A missing key is 0.
func cipherHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		key := q.Get("key")
		if key == "" {
			key = "0"
		}

		r = r.WithContext(ctxlog.With(r.Context(), "key", key))
		log := ctxlog.Get(r.Context())

		out, err := cipher.Encode(q.Get("text"), key)
		if err != nil {
			log.Info("rejected input", "error", err)
			writeText(w, r, http.StatusBadRequest, err.Error())
			return
		}
		n, _ := cipher.ParseKey(key) // already accepted by Encode

		if db.Opened() {
			_, err := db.Append(db.Entry{
				Time:       time.Now(),
				Source:     "http",
				Key:        n.String(),
				Ciphertext: out,
			})
			if err != nil {
				log.Error("failed to journal ciphertext", "error", err)
			}
		}

		writeText(w, r, http.StatusOK, out)
	})
}
