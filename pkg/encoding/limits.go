package encoding

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for Limits. Every language encoder shares the same scan cap
// through the single MaxStringScan tunable.
const (
	DefaultMaxStringScan = 1024
	DefaultMaxSliceItems = 100
	DefaultScanChunk     = 64
)

// Limits bounds how much target memory a single render may touch. A
// corrupted length field can never cause an unbounded read or allocation; it
// can only ever under-preview.
type Limits struct {
	// MaxStringScan caps how many bytes a string scan reads before giving
	// up and truncating with an ellipsis marker.
	MaxStringScan uint64 `yaml:"max_string_scan"`
	// MaxSliceItems caps how many elements a slice preview materializes
	// regardless of the reported length.
	MaxSliceItems uint64 `yaml:"max_slice_items"`
	// ScanChunk is how many bytes a string scan reads per remote access.
	ScanChunk int `yaml:"scan_chunk"`
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{
		MaxStringScan: DefaultMaxStringScan,
		MaxSliceItems: DefaultMaxSliceItems,
		ScanChunk:     DefaultScanChunk,
	}
}

// LoadLimits reads limits from a YAML file. Omitted or zero fields fall
// back to the defaults.
func LoadLimits(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("read limits config: %v", err)
	}
	var l Limits
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, fmt.Errorf("parse limits config: %v", err)
	}
	if l.ScanChunk < 0 {
		return Limits{}, fmt.Errorf("invalid scan_chunk %d", l.ScanChunk)
	}
	if l.MaxStringScan == 0 {
		l.MaxStringScan = DefaultMaxStringScan
	}
	if l.MaxSliceItems == 0 {
		l.MaxSliceItems = DefaultMaxSliceItems
	}
	if l.ScanChunk == 0 {
		l.ScanChunk = DefaultScanChunk
	}
	return l, nil
}
