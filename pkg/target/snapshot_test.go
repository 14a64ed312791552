package target

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	regions := []Region{
		{Addr: 0x1000, Data: []byte("hello world")},
		{Addr: 0x8000, Data: bytes.Repeat([]byte{0xab}, 4096)},
	}

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, regions); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	loaded, err := LoadSnapshot(&buf)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(loaded) != len(regions) {
		t.Fatalf("Loaded %d regions, want %d", len(loaded), len(regions))
	}
	for i, r := range loaded {
		if r.Addr != regions[i].Addr || !bytes.Equal(r.Data, regions[i].Data) {
			t.Errorf("Region %d mismatch", i)
		}
	}
}

func TestSnapshotPeekData(t *testing.T) {
	mem := NewSnapshotMemory([]Region{
		{Addr: 0x1000, Data: []byte("abcdefgh")},
	}, nil)

	buf := make([]byte, 4)
	if err := mem.PeekData(1, 0, 0x1002, buf); err != nil {
		t.Fatalf("PeekData failed: %v", err)
	}
	if string(buf) != "cdef" {
		t.Errorf("Read %q, want \"cdef\"", buf)
	}
}

func TestSnapshotPeekDataLoadBias(t *testing.T) {
	mem := NewSnapshotMemory([]Region{
		{Addr: 0x1000, Data: []byte("biased")},
	}, nil)

	// Runtime address = link-time address + load bias.
	buf := make([]byte, 6)
	if err := mem.PeekData(1, 0x555500000000, 0x555500001000, buf); err != nil {
		t.Fatalf("PeekData failed: %v", err)
	}
	if string(buf) != "biased" {
		t.Errorf("Read %q, want \"biased\"", buf)
	}
}

func TestSnapshotPeekDataUnmapped(t *testing.T) {
	mem := NewSnapshotMemory([]Region{
		{Addr: 0x1000, Data: []byte("abcd")},
	}, nil)

	// Entirely outside.
	if err := mem.PeekData(1, 0, 0x9000, make([]byte, 4)); !errors.Is(err, ErrUnmapped) {
		t.Errorf("Peek outside regions: %v, want ErrUnmapped", err)
	}
	// Straddling the end of the region: atomic failure.
	if err := mem.PeekData(1, 0, 0x1002, make([]byte, 4)); !errors.Is(err, ErrUnmapped) {
		t.Errorf("Straddling peek: %v, want ErrUnmapped", err)
	}
	// Before the first region.
	if err := mem.PeekData(1, 0, 0x100, make([]byte, 4)); !errors.Is(err, ErrUnmapped) {
		t.Errorf("Peek before regions: %v, want ErrUnmapped", err)
	}
}

func TestSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.snap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := WriteSnapshot(f, []Region{{Addr: 0x2000, Data: []byte("persisted")}}); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	f.Close()

	mem, err := LoadSnapshotFile(path, nil)
	if err != nil {
		t.Fatalf("LoadSnapshotFile failed: %v", err)
	}
	buf := make([]byte, 9)
	if err := mem.PeekData(1, 0, 0x2000, buf); err != nil {
		t.Fatalf("PeekData failed: %v", err)
	}
	if string(buf) != "persisted" {
		t.Errorf("Read %q, want \"persisted\"", buf)
	}
}

func TestLoadSnapshotRejectsGarbage(t *testing.T) {
	if _, err := LoadSnapshot(bytes.NewReader([]byte("not a snapshot"))); err == nil {
		t.Errorf("Garbage accepted as snapshot")
	}
}

func TestLoadSnapshotRejectsTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, []Region{{Addr: 0x1000, Data: make([]byte, 64)}}); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	// Recompress a truncated payload to corrupt the region table.
	payload, err := zstdDecoder.DecodeAll(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	short := zstdEncoder.EncodeAll(payload[:len(payload)-32], nil)
	if _, err := LoadSnapshot(bytes.NewReader(short)); err == nil {
		t.Errorf("Truncated snapshot accepted")
	}
}

func TestMapMemoryAtomicFailure(t *testing.T) {
	mem := NewMapMemory()
	mem.SetBytes(0x1000, []byte("abc"))

	buf := []byte{0xee, 0xee, 0xee, 0xee}
	if err := mem.PeekData(1, 0, 0x1000, buf); err == nil {
		t.Fatalf("Peek across a hole succeeded")
	}
	for i, v := range buf {
		if v != 0xee {
			t.Errorf("Byte %d modified to %#x on failed peek", i, v)
		}
	}
}
