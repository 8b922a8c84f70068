// Package rpc carries the plumbing shared by the hand-written gRPC service
// packages: a JSON codec registered under the "json" content subtype and
// generic helpers for method handlers and client calls.
package rpc

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype ("application/grpc+json").
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpc: marshal %T: %w", v, err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpc: unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
