package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cruciblehq/cruxfile/internal/descriptor"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

var ErrProtocol = errors.New("protocol error")

// Names a request or response kind.
type Command string

const (
	CmdResolve  Command = "resolve"
	CmdStatus   Command = "status"
	CmdShutdown Command = "shutdown"
	CmdOK       Command = "ok"
	CmdError    Command = "error"
)

// Wire format of every message.
type Envelope struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Asks the daemon to resolve a descriptor.
type ResolveRequest struct {
	Descriptor string `json:"descriptor"`           // Descriptor text.
	Root       string `json:"root"`                 // Build context directory on the daemon's host. Required.
	Platform   string `json:"platform,omitempty"`   // Target platform. Empty selects the daemon host.
	Output     string `json:"output,omitempty"`     // Directory for config.json. Empty skips writing.
	CheckImage bool   `json:"checkImage,omitempty"` // Whether to resolve the base image with containerd.
}

// Successful resolution.
type ResolveResult struct {
	Descriptor *descriptor.BuildDescriptor `json:"descriptor"`
	CopyRules  []descriptor.CopyRule       `json:"copyRules,omitempty"`
	Config     ocispec.Image               `json:"config"`
	Digest     digest.Digest               `json:"digest"`
	Output     string                      `json:"output,omitempty"`
}

// Daemon status.
type StatusResult struct {
	Running     bool   `json:"running"`
	Version     string `json:"version"`
	Pid         int    `json:"pid"`
	Uptime      string `json:"uptime"`
	Resolutions int    `json:"resolutions"`
}

// Failure reported by the daemon.
type ErrorResult struct {
	Message string `json:"message"`
}

// Encodes a command and payload into an envelope. A nil payload is omitted.
func Encode(cmd Command, payload any) ([]byte, error) {
	env := Envelope{Command: cmd}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
		}
		env.Payload = data
	}

	return json.Marshal(env)
}

// Decodes an envelope, returning it along with its raw payload.
func Decode(data []byte) (*Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	if env.Command == "" {
		return nil, nil, fmt.Errorf("%w: missing command", ErrProtocol)
	}
	return &env, env.Payload, nil
}

// Decodes a raw payload into the given type.
func DecodePayload[T any](payload json.RawMessage) (*T, error) {
	var v T
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: missing payload", ErrProtocol)
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	return &v, nil
}
