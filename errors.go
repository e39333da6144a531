/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"time"
)

const loadFailure = "Failed to load destinations"

type errorBody struct {
	Error string `json:"error"`
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

// drainErrors logs everything sent on errs until ctx is done.
func drainErrors(ctx context.Context, cfg *Config, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errs:
			logf(cfg, "ERROR: %v", err)
		}
	}
}

// reportError sends err on errs unless ctx is done first.
func reportError(ctx context.Context, errs chan<- error, err error) {
	select {
	case errs <- err:
	case <-ctx.Done():
	}
}

// serveJSON writes v with the given status and returns the number of bytes
// written.
func serveJSON(cfg *Config, w http.ResponseWriter, status int, v any, errs chan<- error) int {
	body, err := json.Marshal(v)
	if err != nil {
		errs <- err

		status = http.StatusInternalServerError
		body = []byte(`{"error":"` + loadFailure + `"}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	written, err := w.Write(body)
	if err != nil {
		errs <- err
	}

	return written
}

func serveJSONError(cfg *Config, w http.ResponseWriter, status int, message string, errs chan<- error) int {
	return serveJSON(cfg, w, status, errorBody{Error: message}, errs)
}

func newPage(prefix, title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon(prefix))
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", html.EscapeString(title)))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"%s/\">%s</a></body></html>", html.EscapeString(prefix), html.EscapeString(body)))

	return htmlBody.String()
}
