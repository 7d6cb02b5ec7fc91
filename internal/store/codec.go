package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	orbiterrors "github.com/orbitlab/orbit/pkg/errors"
)

const collectionVersion = "1.0"

type collectionFile struct {
	Version string   `json:"version"`
	Designs []Design `json:"designs"`
}

// decodeCollection accepts the versioned envelope or a bare array of designs.
// Anything else, including a single invalid record, is malformed.
func decodeCollection(source string, data []byte) ([]Design, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, orbiterrors.NewMalformedDataError(source, fmt.Errorf("empty document"))
	}

	var designs []Design
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &designs); err != nil {
			return nil, orbiterrors.NewMalformedDataError(source, err)
		}
	case '{':
		var file collectionFile
		if err := json.Unmarshal(trimmed, &file); err != nil {
			return nil, orbiterrors.NewMalformedDataError(source, err)
		}
		if file.Version != collectionVersion {
			return nil, orbiterrors.NewMalformedDataError(source, fmt.Errorf("unsupported version %q", file.Version))
		}
		designs = file.Designs
	default:
		return nil, orbiterrors.NewMalformedDataError(source, fmt.Errorf("expected an object or array"))
	}

	seen := make(map[string]struct{}, len(designs))
	for _, d := range designs {
		if err := d.Validate(); err != nil {
			return nil, orbiterrors.NewMalformedDataError(source, err)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, orbiterrors.NewMalformedDataError(source, fmt.Errorf("duplicate design id %q", d.ID))
		}
		seen[d.ID] = struct{}{}
	}

	if designs == nil {
		designs = []Design{}
	}
	return designs, nil
}

func encodeCollection(designs []Design) ([]byte, error) {
	if designs == nil {
		designs = []Design{}
	}
	file := collectionFile{
		Version: collectionVersion,
		Designs: designs,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal designs: %w", err)
	}
	return data, nil
}
