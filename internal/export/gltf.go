// Package export writes a scene.Scene out to the on-disk formats TL
// supports: a minimal triangle-indexed glTF 2.0 (JSON + external .bin) and
// Wavefront OBJ.
package export

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// componentType / accessor constants from the glTF 2.0 spec, matching the
// literal values topo_export_gltf writes.
const (
	glFloat        = 5126
	glUnsignedInt  = 5125
	targetArray    = 34962
	targetElements = 34963
)

// triMesh is scene.Mesh re-triangulated (quad a,b,c,d -> a,b,c + a,c,d),
// matching tri_from_quad.
type triMesh struct {
	v   []float32 // 3 floats per vertex
	idx []uint32
}

func triangulate(m meshLike) triMesh {
	t := triMesh{v: append([]float32(nil), m.VertsFlat()...)}
	quads := m.QuadsFlat()
	t.idx = make([]uint32, 0, len(quads)/4*6)
	for i := 0; i+3 < len(quads); i += 4 {
		a, b, c, d := quads[i], quads[i+1], quads[i+2], quads[i+3]
		t.idx = append(t.idx, uint32(a), uint32(b), uint32(c), uint32(a), uint32(c), uint32(d))
	}
	return t
}

// meshLike is the minimal surface export needs, satisfied by scene.Mesh;
// defined locally so export does not import scene just to read two slices.
type meshLike interface {
	VertsFlat() []float32
	QuadsFlat() []int32
}

// ExportGLTF writes a binary buffer at outPath+".bin" and a JSON manifest
// at outPath, concatenating every mesh in meshes into one vertex/index
// buffer with index offsets rebased per mesh, matching topo_export_gltf.
func ExportGLTF(meshes []meshLike, outPath string) error {
	var allV []float32
	var allIdx []uint32
	base := uint32(0)
	for _, m := range meshes {
		t := triangulate(m)
		allV = append(allV, t.v...)
		for _, i := range t.idx {
			allIdx = append(allIdx, i+base)
		}
		base += uint32(len(t.v) / 3)
	}

	binPath := outPath + ".bin"
	byteV := len(allV) * 4
	byteI := len(allIdx) * 4

	bin := make([]byte, 0, byteV+byteI)
	for _, f := range allV {
		bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(f))
	}
	for _, i := range allIdx {
		bin = binary.LittleEndian.AppendUint32(bin, i)
	}
	if err := os.WriteFile(binPath, bin, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", binPath, err)
	}

	manifest := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [ {"uri": "%s.bin", "byteLength": %d} ],
  "bufferViews": [
    {"buffer":0, "byteOffset":0, "byteLength": %d, "target":%d},
    {"buffer":0, "byteOffset":%d, "byteLength": %d, "target":%d}
  ],
  "accessors": [
    {"bufferView":0, "componentType":%d, "count": %d, "type":"VEC3"},
    {"bufferView":1, "componentType":%d, "count": %d, "type":"SCALAR"}
  ],
  "meshes": [ {"primitives": [ {"attributes": {"POSITION":0}, "indices":1} ]} ],
  "nodes": [ {"mesh":0} ],
  "scenes": [ {"nodes": [0]} ],
  "scene": 0
}
`,
		outPath, byteV+byteI,
		byteV, targetArray,
		byteV, byteI, targetElements,
		glFloat, len(allV)/3,
		glUnsignedInt, len(allIdx),
	)
	if err := os.WriteFile(outPath, []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", outPath, err)
	}
	return nil
}
