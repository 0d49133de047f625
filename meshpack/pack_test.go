package meshpack_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/voxelsplace/sierpinski/meshpack"
	"github.com/voxelsplace/sierpinski/sierpinski"
)

func makeTestPack(t *testing.T) *meshpack.Pack {
	t.Helper()
	p := &meshpack.Pack{}
	for level := 0; level <= 2; level++ {
		mesh, err := sierpinski.Generate(sierpinski.DefaultCorners(), level)
		if err != nil {
			t.Fatalf("generate level %d: %v", level, err)
		}
		p.Entries = append(p.Entries, meshpack.Entry{
			Name:    "level" + string(rune('0'+level)),
			Level:   level,
			Corners: sierpinski.DefaultCorners(),
			Mesh:    mesh,
		})
	}
	return p
}

func TestPack_Roundtrip(t *testing.T) {
	for _, comp := range []meshpack.Compression{meshpack.CompNone, meshpack.CompZlib, meshpack.CompZstd} {
		t.Run(comp.String(), func(t *testing.T) {
			want := makeTestPack(t)
			data, err := want.Marshal(comp)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, gotComp, err := meshpack.Unmarshal(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if gotComp != comp {
				t.Fatalf("compression = %v, want %v", gotComp, comp)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("pack differs after roundtrip")
			}
		})
	}
}

func TestPack_EmptyMeshEntry(t *testing.T) {
	p := &meshpack.Pack{Entries: []meshpack.Entry{{Name: "empty", Mesh: &sierpinski.Mesh{}}}}
	data, err := p.Marshal(meshpack.CompZstd)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, _, err := meshpack.Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Mesh.VertexCount() != 0 || got.Entries[0].Mesh.FaceCount() != 0 {
		t.Fatalf("unexpected entries %+v", got.Entries)
	}
}

func TestUnmarshal_Corrupted(t *testing.T) {
	data, err := makeTestPack(t).Marshal(meshpack.CompNone)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	flipped := append([]byte(nil), data...)
	flipped[len(flipped)/2] ^= 0xFF
	if _, _, err := meshpack.Unmarshal(flipped); !errors.Is(err, meshpack.ErrFormat) {
		t.Fatalf("expected ErrFormat for corrupted content, got %v", err)
	}
	if _, _, err := meshpack.Unmarshal([]byte("NOTAPACK\x01\x00")); !errors.Is(err, meshpack.ErrFormat) {
		t.Fatalf("expected ErrFormat for bad magic, got %v", err)
	}
	if _, _, err := meshpack.Unmarshal(data[:20]); !errors.Is(err, meshpack.ErrFormat) {
		t.Fatalf("expected ErrFormat for truncated pack, got %v", err)
	}
	badComp := append([]byte(nil), data...)
	badComp[9] = 7
	if _, _, err := meshpack.Unmarshal(badComp); !errors.Is(err, meshpack.ErrFormat) {
		t.Fatalf("expected ErrFormat for unknown compression, got %v", err)
	}
}

func TestMarshal_RejectsMissingMesh(t *testing.T) {
	p := &meshpack.Pack{Entries: []meshpack.Entry{{Name: "nil"}}}
	if _, err := p.Marshal(meshpack.CompNone); err == nil {
		t.Fatal("expected error for entry without mesh")
	}
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]meshpack.Compression{"none": meshpack.CompNone, "ZLIB": meshpack.CompZlib, " zstd ": meshpack.CompZstd} {
		got, err := meshpack.ParseCompression(in)
		if err != nil || got != want {
			t.Fatalf("ParseCompression(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := meshpack.ParseCompression("lz4"); err == nil {
		t.Fatal("expected error for unknown compression")
	}
}

func TestMarshal_RejectsDuplicateNames(t *testing.T) {
	p := &meshpack.Pack{Entries: []meshpack.Entry{
		{Name: "same", Mesh: &sierpinski.Mesh{}},
		{Name: "same", Level: 1, Mesh: &sierpinski.Mesh{}},
	}}
	if _, err := p.Marshal(meshpack.CompNone); err == nil {
		t.Fatal("expected error for duplicate entry names")
	}
}

func TestUnmarshal_RejectsDuplicateNames(t *testing.T) {
	p := &meshpack.Pack{Entries: []meshpack.Entry{
		{Name: "a", Mesh: &sierpinski.Mesh{}},
		{Name: "b", Mesh: &sierpinski.Mesh{}},
	}}
	data, err := p.Marshal(meshpack.CompNone)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// rename "b" to "a" and fix up the checksum
	const header = len("SIERPACK") + 2
	body := data[header : len(data)-8]
	i := bytes.Index(body, []byte{1, 0, 'b'})
	if i < 0 {
		t.Fatal("second entry name not found")
	}
	body[i+2] = 'a'
	binary.LittleEndian.PutUint64(data[len(data)-8:], xxhash.Sum64(body))

	if _, _, err := meshpack.Unmarshal(data); !errors.Is(err, meshpack.ErrFormat) {
		t.Fatalf("expected ErrFormat for duplicate names, got %v", err)
	}
}
