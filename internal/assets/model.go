package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/internal/engine/texture"
	"github.com/Faultbox/padforge/pkg/paint"
)

// ErrNoScene is returned when a document has no scene to instantiate.
var ErrNoScene = errors.New("gltf: document has no scene")

// Model is a decoded glTF document converted to a scene tree.
type Model struct {
	Path string
	Root *scene.Node

	MeshCount     int
	MaterialCount int
	TextureCount  int
}

// OpenModel reads a .gltf or .glb file from disk.
func OpenModel(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	m, err := FromDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// ReadModel decodes a self-contained document (GLB or glTF with data URIs).
func ReadModel(r io.Reader) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return FromDocument(doc, "")
}

// FromDocument converts the default scene of doc into a node tree.
// baseDir is used to resolve external image URIs; empty disables them.
func FromDocument(doc *gltf.Document, baseDir string) (*Model, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: index %d", ErrNoScene, sceneIdx)
	}

	b := &builder{
		doc:       doc,
		baseDir:   baseDir,
		materials: make(map[int]*scene.Material),
		textures:  make(map[int]*scene.Texture),
		names:     make(map[string]int),
	}

	src := doc.Scenes[sceneIdx]
	root := scene.NewGroup(src.Name)
	for _, idx := range src.Nodes {
		child, err := b.node(idx, 0)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}

	return &Model{
		Root:          root,
		MeshCount:     b.meshes,
		MaterialCount: len(b.materials),
		TextureCount:  len(b.textures),
	}, nil
}

// maxDepth guards against cyclic node references.
const maxDepth = 64

type builder struct {
	doc     *gltf.Document
	baseDir string

	materials map[int]*scene.Material
	textures  map[int]*scene.Texture
	fallback  *scene.Material
	names     map[string]int
	meshes    int
}

func (b *builder) node(idx, depth int) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("node %d: hierarchy deeper than %d", idx, maxDepth)
	}
	src := b.doc.Nodes[idx]

	var out *scene.Node
	if src.Mesh != nil {
		var err error
		out, err = b.meshNode(src)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
	} else {
		out = scene.NewGroup(src.Name)
	}
	out.Local = localMatrix(src)

	for _, c := range src.Children {
		child, err := b.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		out.Add(child)
	}
	return out, nil
}

// meshNode returns a mesh node for a single primitive, or a group holding
// one mesh node per primitive named name, name_1, name_2...
func (b *builder) meshNode(src *gltf.Node) (*scene.Node, error) {
	if *src.Mesh < 0 || *src.Mesh >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", *src.Mesh)
	}
	gm := b.doc.Meshes[*src.Mesh]

	name := src.Name
	if name == "" {
		name = gm.Name
	}

	var meshes []*scene.Mesh
	for i, p := range gm.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		m, err := b.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		meshes = append(meshes, m)
	}

	if len(meshes) == 1 {
		return scene.NewMeshNode(b.unique(name), meshes[0]), nil
	}
	group := scene.NewGroup(name)
	for _, m := range meshes {
		group.Add(scene.NewMeshNode(b.unique(name), m))
	}
	return group, nil
}

func (b *builder) unique(name string) string {
	if name == "" {
		return ""
	}
	n := b.names[name]
	b.names[name] = n + 1
	if n == 0 {
		return name
	}
	return name + "_" + strconv.Itoa(n)
}

func (b *builder) primitive(p *gltf.Primitive) (*scene.Mesh, error) {
	var geom scene.Geometry

	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("missing POSITION attribute")
	}
	acc, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	if geom.Positions, err = modeler.ReadPosition(b.doc, acc, nil); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		if acc, err = b.accessor(idx); err != nil {
			return nil, err
		}
		if geom.Normals, err = modeler.ReadNormal(b.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		if acc, err = b.accessor(idx); err != nil {
			return nil, err
		}
		if geom.UVs, err = modeler.ReadTextureCoord(b.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading uvs: %w", err)
		}
	}

	if p.Indices != nil {
		if acc, err = b.accessor(*p.Indices); err != nil {
			return nil, err
		}
		if geom.Indices, err = modeler.ReadIndices(b.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		geom.Indices = make([]uint32, len(geom.Positions))
		for i := range geom.Indices {
			geom.Indices[i] = uint32(i)
		}
	}
	for _, i := range geom.Indices {
		if int(i) >= len(geom.Positions) {
			return nil, fmt.Errorf("index %d out of range (%d vertices)", i, len(geom.Positions))
		}
	}

	if len(geom.Normals) != len(geom.Positions) {
		geom.Normals = computeNormals(geom.Positions, geom.Indices)
	}

	mat, err := b.material(p.Material)
	if err != nil {
		return nil, err
	}

	b.meshes++
	m := scene.NewMesh(&geom, mat)
	m.CastShadow = true
	m.ReceiveShadow = true
	return m, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

// material returns the shared material for a glTF material index.
// Primitives without one get a white metallic default.
func (b *builder) material(idx *int) (*scene.Material, error) {
	if idx == nil {
		if b.fallback == nil {
			b.fallback = scene.NewMaterial("default", paint.White)
			b.fallback.Metalness = 1
		}
		return b.fallback, nil
	}
	if m, ok := b.materials[*idx]; ok {
		return m, nil
	}
	if *idx < 0 || *idx >= len(b.doc.Materials) {
		return nil, fmt.Errorf("material index %d out of range", *idx)
	}

	src := b.doc.Materials[*idx]
	m := scene.NewMaterial(src.Name, paint.White)
	m.Metalness = 1
	m.DoubleSided = src.DoubleSided
	m.Emissive = paint.FromLinear(
		float32(src.EmissiveFactor[0]),
		float32(src.EmissiveFactor[1]),
		float32(src.EmissiveFactor[2]),
	)
	if src.AlphaMode == gltf.AlphaBlend {
		m.Transparent = true
	}

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			m.Color = paint.FromLinear(float32(f[0]), float32(f[1]), float32(f[2]))
			m.Opacity = float32(f[3])
		}
		if pbr.MetallicFactor != nil {
			m.Metalness = float32(*pbr.MetallicFactor)
		}
		if pbr.RoughnessFactor != nil {
			m.Roughness = float32(*pbr.RoughnessFactor)
		}
		if pbr.BaseColorTexture != nil {
			tex, err := b.texture(pbr.BaseColorTexture.Index)
			if err != nil {
				return nil, fmt.Errorf("material %q: %w", src.Name, err)
			}
			m.Texture = tex
		}
	}

	b.materials[*idx] = m
	return m, nil
}

func (b *builder) texture(idx int) (*scene.Texture, error) {
	if t, ok := b.textures[idx]; ok {
		return t, nil
	}
	if idx < 0 || idx >= len(b.doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", idx)
	}
	src := b.doc.Textures[idx]
	if src.Source == nil || *src.Source < 0 || *src.Source >= len(b.doc.Images) {
		return nil, fmt.Errorf("texture %d has no image", idx)
	}
	img := b.doc.Images[*src.Source]

	data, err := b.imageData(img)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", img.Name, err)
	}
	name := img.URI
	if name == "" || img.IsEmbeddedResource() {
		name = img.Name
	}
	decoded, err := texture.Decode(data, name, img.MimeType)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", img.Name, err)
	}

	t := &scene.Texture{Name: img.Name, Image: decoded}
	b.textures[idx] = t
	return t, nil
}

func (b *builder) imageData(img *gltf.Image) ([]byte, error) {
	if img.BufferView != nil {
		return b.bufferView(*img.BufferView)
	}
	if img.IsEmbeddedResource() {
		return img.MarshalData()
	}
	if img.URI == "" || b.baseDir == "" {
		return nil, errors.New("no image source")
	}
	return os.ReadFile(filepath.Join(b.baseDir, filepath.FromSlash(img.URI)))
}

func (b *builder) bufferView(idx int) ([]byte, error) {
	if idx < 0 || idx >= len(b.doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", idx)
	}
	view := b.doc.BufferViews[idx]
	if view.Buffer < 0 || view.Buffer >= len(b.doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	data := b.doc.Buffers[view.Buffer].Data
	end := view.ByteOffset + view.ByteLength
	if view.ByteOffset < 0 || end > len(data) {
		return nil, fmt.Errorf("buffer view %d exceeds buffer", idx)
	}
	return data[view.ByteOffset:end], nil
}

var identity = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// localMatrix returns the node transform. A non-identity matrix wins over TRS.
func localMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	if n.Matrix != [16]float64{} && n.Matrix != identity {
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := mgl32.Translate3D(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))

	r := mgl32.QuatIdent()
	if n.Rotation != [4]float64{} {
		r = mgl32.Quat{
			W: float32(n.Rotation[3]),
			V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])},
		}.Normalize()
	}

	s := mgl32.Ident4()
	if n.Scale != [3]float64{} {
		s = mgl32.Scale3D(float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]))
	}
	return t.Mul4(r.Mat4()).Mul4(s)
}

// computeNormals returns area-weighted vertex normals.
func computeNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa, pb, pc := mgl32.Vec3(positions[a]), mgl32.Vec3(positions[b]), mgl32.Vec3(positions[c])
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}

	out := make([][3]float32, len(positions))
	for i, n := range acc {
		if n.Len() > 0 {
			n = n.Normalize()
		} else {
			n = mgl32.Vec3{0, 1, 0}
		}
		out[i] = n
	}
	return out
}
