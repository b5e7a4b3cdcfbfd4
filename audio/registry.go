// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds decoders by file extension (e.g., "wav", "mp3", "ogg") and
// an ordered list of writer providers. The registry is itself a
// WriterProvider: listings are the union of its providers' listings and
// writes go to the first provider that supports the requested type.
type Registry struct {
	decoders map[string]Decoder
	aliases  map[string]FileType
	writers  []WriterProvider

	mtx *sync.Mutex
}

// NewRegistry returns a registry that dispatches writes to providers, in order.
func NewRegistry(providers ...WriterProvider) *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
		aliases:  make(map[string]FileType),
		writers:  slices.Clone(providers),
		mtx:      &sync.Mutex{},
	}
}

// RegisterDecoder registers d for the file extension ext, without the dot.
func (r *Registry) RegisterDecoder(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.decoders[normalizeExt(ext)] = d
}

// Decoder returns the decoder registered for ext.
func (r *Registry) Decoder(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.decoders[normalizeExt(ext)]
	return d, ok
}

// RegisterExtension makes ext, without the dot, an alternative extension of t
// for FileTypeByExtension (e.g., "aiff" for AIFF).
func (r *Registry) RegisterExtension(ext string, t FileType) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.aliases[normalizeExt(ext)] = t
}

// RegisterWriter appends p to the providers consulted by the registry.
func (r *Registry) RegisterWriter(p WriterProvider) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.writers = append(r.writers, p)
}

func (r *Registry) providers() []WriterProvider {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.writers)
}

// FileTypes returns the union of every provider's types, in first-seen order.
func (r *Registry) FileTypes() []FileType {
	var types []FileType
	for _, p := range r.providers() {
		for _, t := range p.FileTypes() {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types
}

// FileTypesFor returns the union of every provider's types for src.
func (r *Registry) FileTypesFor(src FrameSource) []FileType {
	var types []FileType
	for _, p := range r.providers() {
		for _, t := range p.FileTypesFor(src) {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types
}

func (r *Registry) Supports(t FileType) bool {
	return slices.Contains(r.FileTypes(), t)
}

func (r *Registry) SupportsFor(t FileType, src FrameSource) bool {
	return slices.Contains(r.FileTypesFor(src), t)
}

// Writer returns the first provider that can write src as t.
func (r *Registry) Writer(t FileType, src FrameSource) (WriterProvider, bool) {
	for _, p := range r.providers() {
		if p.SupportsFor(t, src) {
			return p, true
		}
	}
	return nil, false
}

// Write writes src as t to dst with the first provider supporting it.
func (r *Registry) Write(src FrameSource, t FileType, dst Target) (int64, error) {
	p, ok := r.Writer(t, src)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFileType, t)
	}
	return p.Write(src, t, dst)
}

// FileTypeByExtension finds a type known to the registry's providers by its
// extension or a registered alternative, with or without the leading dot.
func (r *Registry) FileTypeByExtension(ext string) (FileType, bool) {
	ext = normalizeExt(ext)
	types := r.FileTypes()
	for _, t := range types {
		if t.Extension == ext {
			return t, true
		}
	}

	r.mtx.Lock()
	t, ok := r.aliases[ext]
	r.mtx.Unlock()

	if ok && slices.Contains(types, t) {
		return t, true
	}
	return FileType{}, false
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
