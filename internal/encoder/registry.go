package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the encoders by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with all built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{&PNGEncoder{}, &JPEGEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
// "jpg" is accepted as an alias of "jpeg".
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	return r.encoders[format]
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"png", "jpeg"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Resolve picks the encoder for requested. Alpha output cannot go to JPEG,
// so it falls back to PNG, as does an unknown format.
func (r *Registry) Resolve(requested string, hasAlpha bool) Encoder {
	enc := r.Get(requested)
	if enc == nil || (hasAlpha && enc.Format() == "jpeg") {
		return r.encoders["png"]
	}
	return enc
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
