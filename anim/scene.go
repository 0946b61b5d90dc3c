package anim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ybot/common"
)

// transition fades a captured pose out after its playbacks were replaced.
type transition struct {
	from   []mgl64.Quat
	factor float64
	speed  float64
}

// Scene owns every running playback and advances them once per tick.
// It is not safe for concurrent use; all calls belong on the game goroutine.
type Scene struct {
	playbacks   []*Playback
	transitions map[*Skeleton]*transition
	ticks       uint64
}

func NewScene() *Scene {
	return &Scene{transitions: make(map[*Skeleton]*transition)}
}

// BeginAnimation stops everything playing on skel and starts a single
// full-weight playback of [from, to].
func (s *Scene) BeginAnimation(skel *Skeleton, from, to float64, loop bool) *Playback {
	if s == nil || skel == nil {
		return nil
	}
	s.StopAnimation(skel)
	p := newPlayback(skel, from, to, 1, loop)
	p.scene = s
	s.playbacks = append(s.playbacks, p)
	return p
}

// BeginWeightedAnimation starts a playback of [from, to] at the given weight
// alongside whatever is already playing on skel.
func (s *Scene) BeginWeightedAnimation(skel *Skeleton, from, to, weight float64, loop bool) *Playback {
	if s == nil || skel == nil {
		return nil
	}
	p := newPlayback(skel, from, to, common.Clamp(weight, 0, 1), loop)
	p.scene = s
	s.playbacks = append(s.playbacks, p)
	return p
}

// StopAnimation removes every playback on skel. With blending enabled the
// pose being shown is captured and faded out over the next ticks.
func (s *Scene) StopAnimation(skel *Skeleton) {
	if s == nil || skel == nil {
		return
	}
	if ok, speed := skel.blending(); ok && s.hasPlaybacks(skel) {
		s.transitions[skel] = &transition{from: s.LocalRotations(skel), speed: speed}
	}

	kept := s.playbacks[:0]
	for _, p := range s.playbacks {
		if p.skeleton == skel {
			p.done = true
			continue
		}
		kept = append(kept, p)
	}
	clear(s.playbacks[len(kept):])
	s.playbacks = kept
}

// Playbacks returns the running playbacks for skel in start order.
func (s *Scene) Playbacks(skel *Skeleton) []*Playback {
	if s == nil {
		return nil
	}
	var out []*Playback
	for _, p := range s.playbacks {
		if p.skeleton == skel {
			out = append(out, p)
		}
	}
	return out
}

// Ticks returns how many times Tick has run.
func (s *Scene) Ticks() uint64 {
	if s == nil {
		return 0
	}
	return s.ticks
}

// Tick advances all playbacks by one update. A playback's sync root in this
// scene always moves first, so every follower in a chain reads this tick's
// phase.
func (s *Scene) Tick() {
	if s == nil {
		return
	}
	s.ticks++

	for _, p := range s.playbacks {
		s.step(p)
	}

	kept := s.playbacks[:0]
	for _, p := range s.playbacks {
		if !p.done {
			kept = append(kept, p)
		}
	}
	clear(s.playbacks[len(kept):])
	s.playbacks = kept

	for skel, tr := range s.transitions {
		tr.factor += tr.speed
		if tr.factor >= 1 {
			delete(s.transitions, skel)
		}
	}
}

func (s *Scene) step(p *Playback) {
	if p.stepped == s.ticks {
		return
	}
	p.stepped = s.ticks
	if root := p.syncRoot; root != nil && root.scene == s {
		s.step(root)
	}
	p.advance(p.skeleton.FrameRate / common.TicksPerSecond)
}

// Blending reports whether skel is still fading out a previous pose.
func (s *Scene) Blending(skel *Skeleton) bool {
	if s == nil {
		return false
	}
	_, ok := s.transitions[skel]
	return ok
}

// LocalRotations evaluates every bone's local rotation for skel: running
// playbacks are mixed by weight, the rest pose fills any weight below 1, and
// an active transition is faded in from the previously shown pose.
func (s *Scene) LocalRotations(skel *Skeleton) []mgl64.Quat {
	if skel == nil {
		return nil
	}
	var active []*Playback
	if s != nil {
		for _, p := range s.playbacks {
			if p.skeleton == skel && p.Weight > 0 {
				active = append(active, p)
			}
		}
	}

	out := make([]mgl64.Quat, len(skel.Bones))
	for i := range skel.Bones {
		bone := &skel.Bones[i]
		acc := bone.Rest
		total := 0.0
		for _, p := range active {
			q := bone.Sample(p.frame)
			total += p.Weight
			if total == p.Weight {
				acc = q
				continue
			}
			acc = nlerp(acc, q, p.Weight/total)
		}
		if total > 0 && total < 1 {
			acc = nlerp(bone.Rest, acc, total)
		}
		out[i] = acc
	}

	if s != nil {
		if tr, ok := s.transitions[skel]; ok && len(tr.from) == len(out) {
			for i := range out {
				out[i] = nlerp(tr.from[i], out[i], tr.factor)
			}
		}
	}
	return out
}

// Pose evaluates skel and solves world-space joints.
func (s *Scene) Pose(skel *Skeleton) Pose {
	return Solve(skel, s.LocalRotations(skel))
}

func (s *Scene) hasPlaybacks(skel *Skeleton) bool {
	for _, p := range s.playbacks {
		if p.skeleton == skel {
			return true
		}
	}
	return false
}
