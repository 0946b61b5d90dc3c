package assets

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ybot/anim"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSkeleton wraps every validation failure from Decode.
var ErrInvalidSkeleton = errors.New("assets: invalid skeleton")

type SkeletonSpec struct {
	Name      string        `yaml:"name"`
	FrameRate float64       `yaml:"frame_rate"`
	Override  *OverrideSpec `yaml:"override"`
	Ranges    []RangeSpec   `yaml:"ranges"`
	Bones     []BoneSpec    `yaml:"bones"`
}

type OverrideSpec struct {
	EnableBlending bool    `yaml:"enable_blending"`
	BlendingSpeed  float64 `yaml:"blending_speed"`
	Loop           bool    `yaml:"loop"`
}

type RangeSpec struct {
	Name string  `yaml:"name"`
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

type BoneSpec struct {
	Name   string     `yaml:"name"`
	Parent string     `yaml:"parent"`
	Offset [3]float64 `yaml:"offset"`
	Tail   [3]float64 `yaml:"tail"`
	// Rest is an XYZ Euler rotation in degrees.
	Rest [3]float64 `yaml:"rest"`
	Keys []KeySpec  `yaml:"keys"`
}

type KeySpec struct {
	Frame float64    `yaml:"frame"`
	Rot   [3]float64 `yaml:"rot"`
}

// LoadSkeleton reads and decodes a skeleton asset.
func LoadSkeleton(dir, name string) (*anim.Skeleton, error) {
	data, err := Load(dir, name)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", name, err)
	}
	skel, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return skel, nil
}

// Decode parses a YAML skeleton and validates it.
func Decode(data []byte) (*anim.Skeleton, error) {
	var spec SkeletonSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("assets: unmarshal skeleton: %w", err)
	}
	return spec.Build()
}

// Build converts the spec into a skeleton.
func (s SkeletonSpec) Build() (*anim.Skeleton, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidSkeleton)
	}
	if s.FrameRate < 0 {
		return nil, fmt.Errorf("%w: negative frame rate %v", ErrInvalidSkeleton, s.FrameRate)
	}
	if len(s.Bones) == 0 {
		return nil, fmt.Errorf("%w: %s has no bones", ErrInvalidSkeleton, s.Name)
	}

	index := make(map[string]int, len(s.Bones))
	bones := make([]anim.Bone, 0, len(s.Bones))
	for i, b := range s.Bones {
		if b.Name == "" {
			return nil, fmt.Errorf("%w: bone %d has no name", ErrInvalidSkeleton, i)
		}
		if _, dup := index[b.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate bone %q", ErrInvalidSkeleton, b.Name)
		}

		parent := -1
		if b.Parent != "" {
			p, ok := index[b.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: bone %q must follow its parent %q", ErrInvalidSkeleton, b.Name, b.Parent)
			}
			parent = p
		}

		keys := make([]anim.Key, 0, len(b.Keys))
		for k, key := range b.Keys {
			if k > 0 && key.Frame <= b.Keys[k-1].Frame {
				return nil, fmt.Errorf("%w: bone %q keys out of order at frame %v", ErrInvalidSkeleton, b.Name, key.Frame)
			}
			keys = append(keys, anim.Key{Frame: key.Frame, Rot: euler(key.Rot)})
		}

		index[b.Name] = i
		bones = append(bones, anim.Bone{
			Name:   b.Name,
			Parent: parent,
			Offset: mgl64.Vec3(b.Offset),
			Tail:   mgl64.Vec3(b.Tail),
			Rest:   euler(b.Rest),
			Keys:   keys,
		})
	}

	ranges := make([]anim.Range, 0, len(s.Ranges))
	seen := make(map[string]bool, len(s.Ranges))
	for _, r := range s.Ranges {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: range with no name", ErrInvalidSkeleton)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("%w: duplicate range %q", ErrInvalidSkeleton, r.Name)
		}
		if r.From > r.To {
			return nil, fmt.Errorf("%w: range %q ends before it starts", ErrInvalidSkeleton, r.Name)
		}
		seen[r.Name] = true
		ranges = append(ranges, anim.Range{Name: r.Name, From: r.From, To: r.To})
	}

	skel := anim.NewSkeleton(s.Name, s.FrameRate, bones, ranges)
	if s.Override != nil {
		skel.Override = &anim.Override{
			EnableBlending: s.Override.EnableBlending,
			BlendingSpeed:  s.Override.BlendingSpeed,
			Loop:           s.Override.Loop,
		}
	}
	return skel, nil
}

func euler(deg [3]float64) mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(deg[0]),
		mgl64.DegToRad(deg[1]),
		mgl64.DegToRad(deg[2]),
		mgl64.XYZ,
	)
}
