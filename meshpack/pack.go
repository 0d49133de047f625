// Package meshpack stores several generated meshes in one binary container.
//
// A pack is the magic "SIERPACK", a version byte, a compression byte and the
// content section. The content section (after decompression) is
//
//	uint32 entry count
//	per entry:
//	  uint16 name length, name bytes
//	  uint8  level
//	  4 x (float64 X, Y, Z) corners
//	  uint32 vertex count, vertex count x (float64 X, Y, Z)
//	  uint32 face count, face count x (uint32, uint32, uint32)
//	uint64 xxhash64 of everything above
//
// All integers and floats are little endian.
package meshpack

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/voxelsplace/sierpinski/sierpinski"
)

// Compression indicates the codec used for the content section.
type Compression uint8

const (
	CompNone Compression = 0
	CompZlib Compression = 1
	CompZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZlib:
		return "zlib"
	case CompZstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// ParseCompression maps "none", "zlib" or "zstd" to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CompNone, nil
	case "zlib":
		return CompZlib, nil
	case "zstd":
		return CompZstd, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

const (
	magic    = "SIERPACK"
	version1 = 1
)

var ErrFormat = errors.New("invalid mesh pack")

// Entry is one mesh together with the inputs it was generated from.
type Entry struct {
	Name    string
	Level   int
	Corners sierpinski.Tetrahedron
	Mesh    *sierpinski.Mesh
}

// Pack holds named meshes in insertion order. Names are unique.
type Pack struct {
	Entries []Entry
}

// Marshal encodes the pack with the given compression. It fails if two
// entries share a name.
func (p *Pack) Marshal(comp Compression) ([]byte, error) {
	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(p.Entries)))
	seen := make(map[string]struct{}, len(p.Entries))
	for _, e := range p.Entries {
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("duplicate entry name %q", e.Name)
		}
		seen[e.Name] = struct{}{}
		nb := []byte(e.Name)
		if len(nb) > 0xFFFF {
			return nil, fmt.Errorf("name too long: %s", e.Name)
		}
		if e.Level < 0 || e.Level > 0xFF {
			return nil, fmt.Errorf("entry %s: level %d out of range", e.Name, e.Level)
		}
		if e.Mesh == nil {
			return nil, fmt.Errorf("entry %s: no mesh", e.Name)
		}
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		_, _ = content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, uint8(e.Level))
		_ = binary.Write(&content, binary.LittleEndian, e.Corners)
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(e.Mesh.Vertices)))
		_ = binary.Write(&content, binary.LittleEndian, e.Mesh.Vertices)
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(e.Mesh.Faces)))
		_ = binary.Write(&content, binary.LittleEndian, e.Mesh.Faces)
	}
	_ = binary.Write(&content, binary.LittleEndian, xxhash.Sum64(content.Bytes()))

	var body []byte
	switch comp {
	case CompNone:
		body = content.Bytes()
	case CompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		body = buf.Bytes()
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		body = enc.EncodeAll(content.Bytes(), nil)
	default:
		return nil, fmt.Errorf("unsupported compression: %d", comp)
	}

	var out bytes.Buffer
	out.WriteString(magic)
	out.WriteByte(version1)
	out.WriteByte(byte(comp))
	_, _ = out.Write(body)
	return out.Bytes(), nil
}

// Unmarshal parses a pack and returns it with the compression it used.
func Unmarshal(data []byte) (*Pack, Compression, error) {
	if len(data) < len(magic)+2 || string(data[:len(magic)]) != magic {
		return nil, 0, fmt.Errorf("%w: bad magic", ErrFormat)
	}
	version := data[len(magic)]
	if version != version1 {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrFormat, version)
	}
	comp := Compression(data[len(magic)+1])
	content, err := decompress(comp, data[len(magic)+2:])
	if err != nil {
		return nil, 0, err
	}
	if len(content) < 8 {
		return nil, 0, fmt.Errorf("%w: truncated content", ErrFormat)
	}
	body, sum := content[:len(content)-8], binary.LittleEndian.Uint64(content[len(content)-8:])
	if xxhash.Sum64(body) != sum {
		return nil, 0, fmt.Errorf("%w: checksum mismatch", ErrFormat)
	}

	r := bytes.NewReader(body)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, 0, fmt.Errorf("%w: entry count: %v", ErrFormat, err)
	}
	pack := &Pack{Entries: make([]Entry, 0, min(int(n), 1024))}
	seen := make(map[string]struct{}, min(int(n), 1024))
	for i := uint32(0); i < n; i++ {
		e, err := readEntry(r)
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, 0, fmt.Errorf("%w: entry %d: duplicate name %q", ErrFormat, i, e.Name)
		}
		seen[e.Name] = struct{}{}
		pack.Entries = append(pack.Entries, e)
	}
	if r.Len() != 0 {
		return nil, 0, fmt.Errorf("%w: %d trailing bytes", ErrFormat, r.Len())
	}
	return pack, comp, nil
}

func decompress(comp Compression, b []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return b, nil
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return out, nil
	case CompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(b, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported compression %d", ErrFormat, comp)
}

const (
	vertexSize = 3 * 8
	faceSize   = 3 * 4
)

func readEntry(r *bytes.Reader) (Entry, error) {
	var e Entry
	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return e, fmt.Errorf("%w: name length: %v", ErrFormat, err)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return e, fmt.Errorf("%w: name: %v", ErrFormat, err)
	}
	e.Name = string(name)
	var level uint8
	if err := binary.Read(r, binary.LittleEndian, &level); err != nil {
		return e, fmt.Errorf("%w: level: %v", ErrFormat, err)
	}
	e.Level = int(level)
	if err := binary.Read(r, binary.LittleEndian, &e.Corners); err != nil {
		return e, fmt.Errorf("%w: corners: %v", ErrFormat, err)
	}

	var nv uint32
	if err := binary.Read(r, binary.LittleEndian, &nv); err != nil {
		return e, fmt.Errorf("%w: vertex count: %v", ErrFormat, err)
	}
	if uint64(nv)*vertexSize > uint64(r.Len()) {
		return e, fmt.Errorf("%w: %d vertices exceed remaining data", ErrFormat, nv)
	}
	mesh := &sierpinski.Mesh{Vertices: make([]sierpinski.Point3, nv)}
	if err := binary.Read(r, binary.LittleEndian, mesh.Vertices); err != nil {
		return e, fmt.Errorf("%w: vertices: %v", ErrFormat, err)
	}

	var nf uint32
	if err := binary.Read(r, binary.LittleEndian, &nf); err != nil {
		return e, fmt.Errorf("%w: face count: %v", ErrFormat, err)
	}
	if uint64(nf)*faceSize > uint64(r.Len()) {
		return e, fmt.Errorf("%w: %d faces exceed remaining data", ErrFormat, nf)
	}
	mesh.Faces = make([]sierpinski.Face, nf)
	if err := binary.Read(r, binary.LittleEndian, mesh.Faces); err != nil {
		return e, fmt.Errorf("%w: faces: %v", ErrFormat, err)
	}
	for i, f := range mesh.Faces {
		for _, idx := range f {
			if idx >= nv {
				return e, fmt.Errorf("%w: face %d index %d out of range", ErrFormat, i, idx)
			}
		}
	}
	e.Mesh = mesh
	return e, nil
}
