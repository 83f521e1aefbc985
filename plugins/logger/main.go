// Package main provides a logger plugin that appends gesture transitions to
// a file. Useful as a protocol reference for writing other plugins.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action  string          `json:"action"`
	Gesture string          `json:"gesture"`
	Side    string          `json:"side"`
	Active  bool            `json:"active"`
	Config  json.RawMessage `json:"config"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// LogConfig defines the plugin's configuration.
type LogConfig struct {
	Path string `json:"path"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		respond(Response{Success: false, Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	cfg := LogConfig{Path: "gestures.log"}
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			respond(Response{Success: false, Error: fmt.Sprintf("invalid config: %v", err)})
			return
		}
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		respond(Response{Success: false, Error: err.Error()})
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s gesture=%s side=%s active=%v\n",
		time.Now().Format(time.RFC3339), req.Gesture, req.Side, req.Active)
	if _, err := f.WriteString(line); err != nil {
		respond(Response{Success: false, Error: err.Error()})
		return
	}

	respond(Response{Success: true})
}

func respond(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
