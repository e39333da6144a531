/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// shareCard is everything the client needs to challenge a friend.
type shareCard struct {
	Username string `json:"username"`
	Correct  int    `json:"correct"`
	URL      string `json:"url"`
	Text     string `json:"text"`
	WhatsApp string `json:"whatsapp"`
}

// baseURL returns the public root of the app, preferring --base-url and
// otherwise deriving it from the request (respecting TLS and X-Forwarded-Proto).
func baseURL(cfg *Config, r *http.Request) string {
	if cfg.baseURL != "" {
		return strings.TrimSuffix(cfg.baseURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix
}

func inviteURL(cfg *Config, r *http.Request, username string) string {
	return baseURL(cfg, r) + "/?invite=" + url.QueryEscape(username)
}

func newShareCard(cfg *Config, r *http.Request, username string, correct int) shareCard {
	invite := inviteURL(cfg, r, username)
	text := fmt.Sprintf("Join me in the Globetrotter Challenge! I've scored %d correct answers. Can you beat my score?", correct)

	return shareCard{
		Username: username,
		Correct:  correct,
		URL:      invite,
		Text:     text,
		WhatsApp: "https://wa.me/?text=" + strings.ReplaceAll(url.QueryEscape(text+" "+invite), "+", "%20"),
	}
}

func serveShareCard(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id := requestID(w, r)

		q := r.URL.Query()

		username := strings.TrimSpace(q.Get("username"))
		if username == "" {
			serveJSONError(cfg, w, http.StatusBadRequest, "username is required", errs)

			return
		}

		correct, err := strconv.Atoi(q.Get("correct"))
		if err != nil || correct < 0 {
			serveJSONError(cfg, w, http.StatusBadRequest, "correct must be a non-negative integer", errs)

			return
		}

		written := serveJSON(cfg, w, http.StatusOK, newShareCard(cfg, r, username, correct), errs)

		logf(cfg, "SERVE: [%s] Share card for %q (%s) to %s in %s",
			id,
			username,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveShareQR renders a PNG QR code of the invite link for username.
func serveShareQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id := requestID(w, r)

		username := strings.TrimSpace(r.URL.Query().Get("username"))
		if username == "" {
			http.Error(w, "missing username", http.StatusBadRequest)

			return
		}

		png, err := qrcode.Encode(inviteURL(cfg, r, username), qrcode.Medium, qrSize)
		if err != nil {
			errs <- err

			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: [%s] Share QR for %q (%s) to %s in %s",
			id,
			username,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerShareAPI sets up routes so that:
//   - $path    → share card JSON for ?username=&correct=
//   - $path/qr → PNG QR code of the invite link for ?username=
func registerShareAPI(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+path, serveShareCard(cfg, errs))

	mux.GET(cfg.prefix+path+"/qr", serveShareQR(cfg, errs))
}
