package cluster

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// WriteExport streams a cluster snapshot as zstd-compressed GeoJSON. It is
// an export of the layout the engine computed, not a persistence format:
// nothing in this package reads exports back.
func WriteExport(w io.Writer, views []ClusterView) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	if err := json.NewEncoder(enc).Encode(ToGeoJSON(views)); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode clusters: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}
