package semantic

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
)

var ErrMalformed = errors.New("semantic: malformed house file")

// ZUpToYUp rotates Matterport's gravity-along-Z frame into the simulator's
// gravity-along-Y frame.
func ZUpToYUp() math32.Quat {
	return math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), -math32.Pi/2)
}

type houseParser struct {
	rot    math32.Quat
	scene  *Scene
	line   int
	levels map[int]*Level
	region map[int]*Region
	cats   map[int]Category
}

// LoadMp3dHouse parses a Matterport ASCII .house file into s, replacing any
// previous contents. Coordinates are rotated by rot.
func LoadMp3dHouse(path string, s *Scene, rot math32.Quat) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open house: %w", err)
	}
	defer f.Close()

	*s = *New()
	p := &houseParser{
		rot:    rot,
		scene:  s,
		levels: make(map[int]*Level),
		region: make(map[int]*Region),
		cats:   make(map[int]Category),
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		tok := strings.Fields(sc.Text())
		if len(tok) == 0 {
			continue
		}
		if err := p.record(tok); err != nil {
			return fmt.Errorf("%s:%d: %w", path, p.line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read house: %w", err)
	}
	return nil
}

func (p *houseParser) record(tok []string) error {
	switch tok[0] {
	case "H":
		if len(tok) < 12 {
			return ErrMalformed
		}
		p.scene.Name = tok[1]
		p.scene.Label = tok[2]
		// bbox is followed by five reserved fields
		box, err := p.box(tok, len(tok)-11)
		if err != nil {
			return err
		}
		p.scene.AABB = box
	case "L":
		if len(tok) < 13 {
			return ErrMalformed
		}
		idx, err := strconv.Atoi(tok[1])
		if err != nil {
			return ErrMalformed
		}
		l := &Level{Index: idx, Label: tok[3]}
		if l.Position, err = p.vec(tok, 4); err != nil {
			return err
		}
		if l.AABB, err = p.box(tok, 7); err != nil {
			return err
		}
		p.levels[idx] = l
		p.scene.Levels = append(p.scene.Levels, l)
	case "R":
		if len(tok) < 15 {
			return ErrMalformed
		}
		idx, err1 := strconv.Atoi(tok[1])
		lvl, err2 := strconv.Atoi(tok[2])
		if err1 != nil || err2 != nil || tok[5] == "" {
			return ErrMalformed
		}
		r := &Region{Index: idx, Category: Mp3dRegionCategory{Code: tok[5][0]}}
		var err error
		if r.Position, err = p.vec(tok, 6); err != nil {
			return err
		}
		if r.AABB, err = p.box(tok, 9); err != nil {
			return err
		}
		if l, ok := p.levels[lvl]; ok {
			r.Level = l
			l.Regions = append(l.Regions, r)
		}
		p.region[idx] = r
		p.scene.Regions = append(p.scene.Regions, r)
	case "C":
		if len(tok) < 6 {
			return ErrMalformed
		}
		ints, err := atois(tok[1], tok[2], tok[4])
		if err != nil {
			return err
		}
		c := Mp3dObjectCategory{
			CategoryIndex: ints[0],
			MappingIndex:  ints[1],
			MappingName:   strings.ReplaceAll(tok[3], "#", " "),
			Mpcat40Index:  ints[2],
			Mpcat40Name:   strings.ReplaceAll(tok[5], "#", " "),
		}
		p.cats[c.CategoryIndex] = c
		p.scene.Categories = append(p.scene.Categories, c)
	case "O":
		if len(tok) < 16 {
			return ErrMalformed
		}
		return p.object(tok)
	}
	// portals, surfaces, vertices, images, panoramas and segments are not
	// needed by the annotation hierarchy.
	return nil
}

func (p *houseParser) object(tok []string) error {
	ints, err := atois(tok[1], tok[2], tok[3])
	if err != nil {
		return err
	}
	center, err := p.vec(tok, 4)
	if err != nil {
		return err
	}
	a0, err := rawVec(tok, 7)
	if err != nil {
		return err
	}
	a1, err := rawVec(tok, 10)
	if err != nil {
		return err
	}
	radii, err := rawVec(tok, 13)
	if err != nil {
		return err
	}

	o := &Object{Index: ints[0]}
	o.OBB = OBB{
		Center:      center,
		HalfExtents: radii,
		Rotation:    p.axesRotation(a0, a1),
	}
	o.AABB = o.OBB.AABB()
	if c, ok := p.cats[ints[2]]; ok {
		o.Category = c
	}
	if r, ok := p.region[ints[1]]; ok {
		o.Region = r
		r.Objects = append(r.Objects, o)
		if r.Level != nil {
			r.Level.Objects = append(r.Level.Objects, o)
		}
	}
	p.scene.addObject(o)
	return nil
}

// axesRotation builds the box orientation from its first two axes in file
// coordinates, then applies the frame rotation.
func (p *houseParser) axesRotation(a0, a1 math32.Vector3) math32.Quat {
	a0 = a0.Normal()
	a1 = a1.Normal()
	a2 := a0.Cross(a1).Normal()
	var m math32.Matrix4
	m.SetIdentity()
	m[0], m[1], m[2] = a0.X, a0.Y, a0.Z
	m[4], m[5], m[6] = a1.X, a1.Y, a1.Z
	m[8], m[9], m[10] = a2.X, a2.Y, a2.Z
	var q math32.Quat
	q.SetFromRotationMatrix(&m)
	q.Normalize()
	r := p.rot
	return r.Mul(q)
}

func (p *houseParser) vec(tok []string, i int) (math32.Vector3, error) {
	v, err := rawVec(tok, i)
	if err != nil {
		return v, err
	}
	return v.MulQuat(p.rot), nil
}

func (p *houseParser) box(tok []string, i int) (math32.Box3, error) {
	lo, err := rawVec(tok, i)
	if err != nil {
		return math32.Box3{}, err
	}
	hi, err := rawVec(tok, i+3)
	if err != nil {
		return math32.Box3{}, err
	}
	return math32.Box3{Min: lo, Max: hi}.MulQuat(p.rot), nil
}

func rawVec(tok []string, i int) (math32.Vector3, error) {
	if i < 0 || i+3 > len(tok) {
		return math32.Vector3{}, ErrMalformed
	}
	var f [3]float32
	for k := range f {
		v, err := strconv.ParseFloat(tok[i+k], 32)
		if err != nil {
			return math32.Vector3{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		f[k] = float32(v)
	}
	return math32.Vec3(f[0], f[1], f[2]), nil
}

func atois(s ...string) ([]int, error) {
	out := make([]int, len(s))
	for i, v := range s {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out[i] = n
	}
	return out, nil
}
