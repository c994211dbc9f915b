package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/catapult/pkg/math"
)

// minSides is the fewest sides a prism can have.
const minSides = 3

// builder accumulates triangles and tracks bounds.
type builder struct {
	g Geometry
}

func newBuilder() *builder {
	return &builder{g: Geometry{Bounds: emptyBounds()}}
}

func (b *builder) vertex(p, n math.Vec3, u, v float32) uint32 {
	idx := uint32(len(b.g.Vertices))
	pos := p.Array()
	b.g.Vertices = append(b.g.Vertices, Vertex{
		Position: pos,
		Normal:   n.Array(),
		TexCoord: [2]float32{u, v},
	})
	updateBounds(&b.g.Bounds, pos)
	return idx
}

// quad adds four counter-clockwise corners as two triangles.
func (b *builder) quad(corners [4]math.Vec3, n math.Vec3, uvScale [2]float32) {
	uvs := [4][2]float32{{0, 0}, {uvScale[0], 0}, {uvScale[0], uvScale[1]}, {0, uvScale[1]}}
	var idx [4]uint32
	for i := range corners {
		idx[i] = b.vertex(corners[i], n, uvs[i][0], uvs[i][1])
	}
	b.g.Indices = append(b.g.Indices, idx[0], idx[1], idx[2], idx[0], idx[2], idx[3])
}

// face adds the rectangle centered at c spanned by half-axes u and v.
// u x v must point along the outward normal.
func (b *builder) face(c, u, v math.Vec3, uvScale [2]float32) {
	n := u.Cross(v).Normalize()
	b.quad([4]math.Vec3{
		c.Sub(u).Sub(v),
		c.Add(u).Sub(v),
		c.Add(u).Add(v),
		c.Sub(u).Add(v),
	}, n, uvScale)
}

func (b *builder) build() *Geometry {
	g := b.g
	return &g
}

// Box returns an axis-aligned box centered on the origin with flat-shaded
// faces. Texture coordinates span 0..1 on every face.
func Box(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	x := math.Vec3{X: hx}
	y := math.Vec3{Y: hy}
	z := math.Vec3{Z: hz}
	one := [2]float32{1, 1}

	b := newBuilder()
	b.face(x, z.Negate(), y, one)          // +X
	b.face(x.Negate(), z, y, one)          // -X
	b.face(y, x, z.Negate(), one)          // +Y
	b.face(y.Negate(), x, z, one)          // -Y
	b.face(z, x, y, one)                   // +Z
	b.face(z.Negate(), x.Negate(), y, one) // -Z
	return b.build()
}

// Plank returns a box whose texture repeats along its length so the grain
// is not stretched.
func Plank(length, height, depth float32) *Geometry {
	g := Box(length, height, depth)
	scale := length / height
	if scale < 1 {
		scale = 1
	}
	// The four long faces are +Y/-Y/+Z/-Z, indices 2..5.
	for face := 2; face < 6; face++ {
		for i := 0; i < 4; i++ {
			g.Vertices[face*4+i].TexCoord[0] *= scale
		}
	}
	return g
}

// Prism returns a regular prism along the Z axis centered on the origin.
// With enough sides it stands in for a cylinder (axle, winder drum).
// sides below three are raised to three.
func Prism(radius, length float32, sides int) *Geometry {
	if sides < minSides {
		sides = minSides
	}
	hl := length / 2
	step := 2 * math32.Pi / float32(sides)

	ring := make([]math.Vec3, sides)
	for i := range ring {
		a := float32(i) * step
		ring[i] = math.Vec3{X: radius * math32.Cos(a), Y: radius * math32.Sin(a)}
	}

	b := newBuilder()

	// Sides, flat normal at the middle of each face.
	for i := 0; i < sides; i++ {
		p0, p1 := ring[i], ring[(i+1)%sides]
		mid := (float32(i) + 0.5) * step
		n := math.Vec3{X: math32.Cos(mid), Y: math32.Sin(mid)}
		b.quad([4]math.Vec3{
			p0.Add(math.Vec3{Z: -hl}),
			p1.Add(math.Vec3{Z: -hl}),
			p1.Add(math.Vec3{Z: hl}),
			p0.Add(math.Vec3{Z: hl}),
		}, n, [2]float32{1, 1})
	}

	// Caps as triangle fans.
	for _, sign := range []float32{1, -1} {
		n := math.Vec3{Z: sign}
		center := b.vertex(math.Vec3{Z: sign * hl}, n, 0.5, 0.5)
		first := uint32(len(b.g.Vertices))
		for i := 0; i < sides; i++ {
			a := float32(i) * step
			b.vertex(ring[i].Add(math.Vec3{Z: sign * hl}), n, 0.5+0.5*math32.Cos(a), 0.5+0.5*math32.Sin(a))
		}
		for i := 0; i < sides; i++ {
			cur := first + uint32(i)
			next := first + uint32((i+1)%sides)
			if sign > 0 {
				b.g.Indices = append(b.g.Indices, center, cur, next)
			} else {
				b.g.Indices = append(b.g.Indices, center, next, cur)
			}
		}
	}

	return b.build()
}

// Plane returns a horizontal square facing +Y at height zero. The texture
// repeats repeat times across each side.
func Plane(width, depth, repeat float32) *Geometry {
	b := newBuilder()
	b.face(math.Vec3{}, math.Vec3{X: width / 2}, math.Vec3{Z: -depth / 2}, [2]float32{repeat, repeat})
	return b.build()
}
