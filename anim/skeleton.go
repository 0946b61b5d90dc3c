package anim

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Range is a named frame interval inside a skeleton's shared keyframe track.
type Range struct {
	Name string
	From float64
	To   float64
}

// Length returns the number of frames covered by the range.
func (r Range) Length() float64 { return r.To - r.From }

// Key is a local bone rotation at a given frame.
type Key struct {
	Frame float64
	Rot   mgl64.Quat
}

// Bone is one joint of a skeleton. Offset is expressed in the parent's space
// (world space for roots) and Tail in the bone's own space.
type Bone struct {
	Name   string
	Parent int
	Offset mgl64.Vec3
	Tail   mgl64.Vec3
	Rest   mgl64.Quat
	Keys   []Key
}

// Sample returns the bone's local rotation at frame, interpolating between
// the surrounding keys. Frames outside the keyed interval hold the nearest key.
func (b *Bone) Sample(frame float64) mgl64.Quat {
	if b == nil {
		return mgl64.QuatIdent()
	}
	n := len(b.Keys)
	if n == 0 {
		return b.Rest
	}
	if frame <= b.Keys[0].Frame {
		return b.Keys[0].Rot
	}
	if frame >= b.Keys[n-1].Frame {
		return b.Keys[n-1].Rot
	}

	// first key strictly after frame
	i := sort.Search(n, func(i int) bool { return b.Keys[i].Frame > frame })
	prev, next := b.Keys[i-1], b.Keys[i]
	span := next.Frame - prev.Frame
	if span <= 0 {
		return next.Rot
	}
	return nlerp(prev.Rot, next.Rot, (frame-prev.Frame)/span)
}

// Override changes how playbacks on a skeleton behave.
type Override struct {
	// EnableBlending fades the previous pose out when playbacks are replaced.
	EnableBlending bool
	// BlendingSpeed is the fraction of the transition completed per tick.
	BlendingSpeed float64
	// Loop forces every playback on the skeleton to cycle.
	Loop bool
}

// Skeleton is a bone hierarchy with a single keyframe track split into named
// ranges. Bones are ordered so that parents precede their children.
type Skeleton struct {
	Name      string
	FrameRate float64
	Bones     []Bone
	Override  *Override

	ranges map[string]Range
	order  []string
}

// NewSkeleton builds a skeleton. Later ranges with a duplicate name win.
func NewSkeleton(name string, frameRate float64, bones []Bone, ranges []Range) *Skeleton {
	if frameRate <= 0 {
		frameRate = 60
	}
	s := &Skeleton{
		Name:      name,
		FrameRate: frameRate,
		Bones:     bones,
		ranges:    make(map[string]Range, len(ranges)),
	}
	for _, r := range ranges {
		if _, ok := s.ranges[r.Name]; !ok {
			s.order = append(s.order, r.Name)
		}
		s.ranges[r.Name] = r
	}
	return s
}

// Range resolves a named range. It returns nil if the skeleton has no such
// range, which callers treat as "not loaded".
func (s *Skeleton) Range(name string) *Range {
	if s == nil {
		return nil
	}
	r, ok := s.ranges[name]
	if !ok {
		return nil
	}
	return &r
}

// Ranges returns all ranges in declaration order.
func (s *Skeleton) Ranges() []Range {
	if s == nil {
		return nil
	}
	out := make([]Range, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.ranges[name])
	}
	return out
}

// BoneIndex returns the index of the named bone, or -1.
func (s *Skeleton) BoneIndex(name string) int {
	if s == nil {
		return -1
	}
	for i := range s.Bones {
		if s.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Skeleton) blending() (bool, float64) {
	if s == nil || s.Override == nil || !s.Override.EnableBlending || s.Override.BlendingSpeed <= 0 {
		return false, 0
	}
	return true, s.Override.BlendingSpeed
}

func (s *Skeleton) forceLoop() bool {
	return s != nil && s.Override != nil && s.Override.Loop
}

// nlerp interpolates along the shortest arc and renormalizes.
func nlerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatLerp(a, b, t).Normalize()
}
