package anim

import "github.com/milk9111/ybot/common"

// Playback is one running range on a skeleton.
type Playback struct {
	From       float64
	To         float64
	Loop       bool
	Weight     float64
	SpeedRatio float64

	skeleton *Skeleton
	scene    *Scene
	frame    float64
	syncRoot *Playback
	done     bool
	stepped  uint64 // scene tick this playback last advanced on
}

func newPlayback(skel *Skeleton, from, to, weight float64, loop bool) *Playback {
	if to < from {
		from, to = to, from
	}
	return &Playback{
		From:       from,
		To:         to,
		Loop:       loop || skel.forceLoop(),
		Weight:     weight,
		SpeedRatio: 1,
		skeleton:   skel,
		frame:      from,
	}
}

// Frame returns the current frame within [From, To].
func (p *Playback) Frame() float64 {
	if p == nil {
		return 0
	}
	return p.frame
}

// Done reports whether a non-looping playback reached its last frame or the
// playback was stopped.
func (p *Playback) Done() bool {
	return p == nil || p.done
}

// Phase returns the normalized position within the range, in [0, 1].
func (p *Playback) Phase() float64 {
	if p == nil {
		return 0
	}
	span := p.To - p.From
	if span <= 0 {
		return 0
	}
	return (p.frame - p.From) / span
}

// SyncRoot returns the playback this one follows, if any.
func (p *Playback) SyncRoot() *Playback {
	if p == nil {
		return nil
	}
	return p.syncRoot
}

// SyncWith makes p follow master: p takes master's speed ratio and its
// normalized phase on every tick, so ranges of different length cycle
// together. Passing nil detaches p. The relation is one-way; master is not
// affected.
func (p *Playback) SyncWith(master *Playback) {
	if p == nil {
		return
	}
	if master == p {
		master = nil
	}
	p.syncRoot = master
	if master != nil {
		p.follow()
	}
}

func (p *Playback) follow() {
	root := p.syncRoot
	p.SpeedRatio = root.SpeedRatio
	p.frame = common.Lerp(p.From, p.To, root.Phase())
}

func (p *Playback) advance(step float64) {
	if p.done {
		return
	}
	if p.syncRoot != nil && !p.syncRoot.done {
		p.follow()
		return
	}

	p.frame += step * p.SpeedRatio
	if p.frame <= p.To {
		return
	}
	if p.Loop {
		p.frame = common.Wrap(p.frame, p.From, p.To)
		return
	}
	p.frame = p.To
	p.done = true
}
