package target

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// Snapshot file layout, zstd-compressed as a whole: an 8-byte magic, a u32
// region count, then per region a u64 start address, a u64 byte length and
// the raw bytes. Addresses are link-time addresses.
const snapshotMagic = "MVSNAP1\x00"

var (
	// encoder and decoder for zstd are reusable and thread-safe
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// ErrUnmapped is returned when a peek falls outside every captured region.
var ErrUnmapped = errors.New("address not mapped in snapshot")

// Region is one contiguous captured range of target memory.
type Region struct {
	Addr uint64
	Data []byte
}

// SnapshotMemory implements Memory over regions captured from a stopped
// target, for offline/post-mortem rendering.
type SnapshotMemory struct {
	regions []Region // sorted by Addr
	log     *zap.Logger
}

// NewSnapshotMemory creates a snapshot adapter over regions. log may be nil.
func NewSnapshotMemory(regions []Region, log *zap.Logger) *SnapshotMemory {
	if log == nil {
		log = zap.NewNop()
	}
	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Addr < sorted[j].Addr })
	return &SnapshotMemory{regions: sorted, log: log}
}

// PeekData implements Memory. Runtime-absolute addresses are translated back
// to the link-time addresses the regions were captured under by subtracting
// the load bias. The whole range must fall inside one region.
func (s *SnapshotMemory) PeekData(pid int, loadBias uint64, addr uint64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	want := addr - loadBias
	i := sort.Search(len(s.regions), func(i int) bool {
		r := &s.regions[i]
		return r.Addr+uint64(len(r.Data)) > want
	})
	if i == len(s.regions) {
		return fmt.Errorf("peek %d bytes at %#x: %w", len(buf), addr, ErrUnmapped)
	}
	r := &s.regions[i]
	if want < r.Addr || want-r.Addr+uint64(len(buf)) > uint64(len(r.Data)) {
		s.log.Debug("peek outside captured regions",
			zap.Uint64("addr", addr),
			zap.Int("len", len(buf)))
		return fmt.Errorf("peek %d bytes at %#x: %w", len(buf), addr, ErrUnmapped)
	}
	copy(buf, r.Data[want-r.Addr:])
	return nil
}

// WriteSnapshot serializes and compresses regions to w.
func WriteSnapshot(w io.Writer, regions []Region) error {
	var payload bytes.Buffer
	payload.WriteString(snapshotMagic)
	if err := binary.Write(&payload, binary.LittleEndian, uint32(len(regions))); err != nil {
		return err
	}
	for _, r := range regions {
		if err := binary.Write(&payload, binary.LittleEndian, r.Addr); err != nil {
			return err
		}
		if err := binary.Write(&payload, binary.LittleEndian, uint64(len(r.Data))); err != nil {
			return err
		}
		payload.Write(r.Data)
	}

	compressed := zstdEncoder.EncodeAll(payload.Bytes(), make([]byte, 0, payload.Len()))
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("write snapshot: %v", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot serialized by WriteSnapshot.
func LoadSnapshot(r io.Reader) ([]Region, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %v", err)
	}
	payload, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %v", err)
	}
	if len(payload) < len(snapshotMagic)+4 || string(payload[:len(snapshotMagic)]) != snapshotMagic {
		return nil, fmt.Errorf("not a snapshot file")
	}
	rest := payload[len(snapshotMagic):]
	count := binary.LittleEndian.Uint32(rest)
	rest = rest[4:]

	regions := make([]Region, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(rest) < 16 {
			return nil, fmt.Errorf("truncated snapshot: region %d header", i)
		}
		addr := binary.LittleEndian.Uint64(rest)
		size := binary.LittleEndian.Uint64(rest[8:])
		rest = rest[16:]
		if uint64(len(rest)) < size {
			return nil, fmt.Errorf("truncated snapshot: region %d data", i)
		}
		regions = append(regions, Region{Addr: addr, Data: rest[:size:size]})
		rest = rest[size:]
	}
	return regions, nil
}

// LoadSnapshotFile loads a snapshot file into a ready-to-use adapter.
func LoadSnapshotFile(path string, log *zap.Logger) (*SnapshotMemory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %v", err)
	}
	defer f.Close()

	regions, err := LoadSnapshot(f)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Info("loaded memory snapshot",
			zap.String("path", path),
			zap.Int("regions", len(regions)))
	}
	return NewSnapshotMemory(regions, log), nil
}
