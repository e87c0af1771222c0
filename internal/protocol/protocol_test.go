package protocol

import (
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(CmdResolve, &ResolveRequest{
		Descriptor: "FROM golang:1.19\n",
		Root:       "/src",
		CheckImage: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Command != CmdResolve {
		t.Fatalf("command = %q, want %q", env.Command, CmdResolve)
	}

	req, err := DecodePayload[ResolveRequest](payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Descriptor != "FROM golang:1.19\n" || req.Root != "/src" || !req.CheckImage {
		t.Fatalf("request = %+v", req)
	}
}

func TestEncodeNilPayload(t *testing.T) {
	data, err := Encode(CmdOK, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"command":"ok"}` {
		t.Fatalf("encoded = %s, want {\"command\":\"ok\"}", data)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{"", "not json", `{"payload":{}}`} {
		if _, _, err := Decode([]byte(input)); !errors.Is(err, ErrProtocol) {
			t.Fatalf("Decode(%q) error = %v, want %v", input, err, ErrProtocol)
		}
	}
}

func TestDecodePayloadMissing(t *testing.T) {
	if _, err := DecodePayload[ResolveRequest](nil); !errors.Is(err, ErrProtocol) {
		t.Fatalf("error = %v, want %v", err, ErrProtocol)
	}
}
