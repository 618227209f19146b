// Package plugin provides plugin discovery and execution for the Mudra
// fingertip-distance daemon. Plugins are standalone executables that receive
// a JSON request on stdin describing a rule event and reply with a JSON
// response on stdout.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is sent to a plugin when a distance rule fires.
type Request struct {
	Action    string          `json:"action"`
	Rule      string          `json:"rule"`
	Phase     string          `json:"phase"`
	Chirality string          `json:"chirality"`
	Distance  float64         `json:"distance"`
	Config    json.RawMessage `json:"config"`
	Params    json.RawMessage `json:"params"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
