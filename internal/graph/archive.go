package graph

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"taglattice/internal/db"
)

// Archive is the serialized form of the whole lattice: nodes, edges, and
// aliases. Derived records (path cache, search index) are rebuildable and
// not archived.
type Archive struct {
	Nodes   []db.Node  `json:"nodes"`
	Edges   []db.Edge  `json:"edges"`
	Aliases []db.Alias `json:"aliases"`
}

// WriteArchive streams a zstd-compressed JSON archive of the store
func WriteArchive(w io.Writer, d *db.DB) error {
	arch := &Archive{}
	var err error
	if arch.Nodes, err = d.AllNodes(); err != nil {
		return fmt.Errorf("loading nodes: %w", err)
	}
	if arch.Edges, err = d.AllEdges(); err != nil {
		return fmt.Errorf("loading edges: %w", err)
	}
	if arch.Aliases, err = d.AllAliases(); err != nil {
		return fmt.Errorf("loading aliases: %w", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(arch); err != nil {
		enc.Close()
		return fmt.Errorf("encoding archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing archive: %w", err)
	}
	return nil
}

// ReadArchive decodes a zstd-compressed archive
func ReadArchive(r io.Reader) (*Archive, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	var arch Archive
	if err := json.NewDecoder(dec).Decode(&arch); err != nil {
		return nil, fmt.Errorf("decoding archive: %w", err)
	}
	return &arch, nil
}
