/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/Seednode/globetrotter/destinations"
	"github.com/julienschmidt/httprouter"
)

// nextDestination serves a question, falling back to the whole catalog when
// the exclusion leaves nothing to pick from.
func nextDestination(catalog destinations.Catalog, exclude destinations.Exclusion, src destinations.Source) (destinations.Result, error) {
	sel := destinations.NewSelector(catalog, src)

	result, err := sel.Next(exclude)
	if errors.Is(err, destinations.ErrNoEligibleDestinations) {
		return sel.Next(destinations.Exclusion{})
	}

	return result, err
}

func serveRandomDestination(cfg *Config, store *catalogStore, src destinations.Source, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id := requestID(w, r)

		q := r.URL.Query()

		exclude := destinations.Exclusion{
			City:    q.Get("excludeCity"),
			Country: q.Get("excludeCountry"),
		}

		result, err := nextDestination(store.Catalog(), exclude, src)
		if err != nil {
			logf(cfg, "ERROR: [%s] Selecting destination: %v", id, err)

			serveJSONError(cfg, w, http.StatusInternalServerError, loadFailure, errs)

			return
		}

		written := serveJSON(cfg, w, http.StatusOK, result, errs)

		logf(cfg, "SERVE: [%s] Destination %q (%s) to %s in %s",
			id,
			result.Key(),
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveCheckAnswer(cfg *Config, store *catalogStore, src destinations.Source, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id := requestID(w, r)

		q := r.URL.Query()

		city, country, answer := q.Get("city"), q.Get("country"), q.Get("answer")
		if city == "" || country == "" || answer == "" {
			serveJSONError(cfg, w, http.StatusBadRequest, "city, country and answer are required", errs)

			return
		}

		d, ok := store.Catalog().Find(destinations.Key(city, country))
		if !ok {
			serveJSONError(cfg, w, http.StatusNotFound, "Unknown destination", errs)

			return
		}

		result := destinations.Check(d, answer, src)

		written := serveJSON(cfg, w, http.StatusOK, result, errs)

		logf(cfg, "SERVE: [%s] Answer check for %q, correct=%t (%s) to %s in %s",
			id,
			d.Key(),
			result.Correct,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerDestinationAPI sets up routes so that:
//   - $path/random → a random destination with four answer options
//   - $path/check  → feedback for a single answer
//   - $path/ws     → websocket question feed
func registerDestinationAPI(cfg *Config, path string, mux *httprouter.Router, store *catalogStore, src destinations.Source, errs chan<- error) {
	mux.GET(cfg.prefix+path+"/random", serveRandomDestination(cfg, store, src, errs))

	mux.GET(cfg.prefix+path+"/check", serveCheckAnswer(cfg, store, src, errs))

	mux.GET(cfg.prefix+path+"/ws", serveFeed(cfg, store, src))
}
