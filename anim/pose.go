package anim

import "github.com/go-gl/mathgl/mgl64"

// Joint is a solved bone segment in world space.
type Joint struct {
	Name string
	Head mgl64.Vec3
	Tail mgl64.Vec3
}

// Pose is a skeleton solved for one tick, indexed like Skeleton.Bones.
type Pose struct {
	Joints []Joint
}

// Solve runs forward kinematics over local bone rotations. A short or nil
// rotation slice falls back to the rest pose for the missing bones.
func Solve(skel *Skeleton, local []mgl64.Quat) Pose {
	if skel == nil {
		return Pose{}
	}

	world := make([]mgl64.Quat, len(skel.Bones))
	joints := make([]Joint, len(skel.Bones))
	for i := range skel.Bones {
		bone := &skel.Bones[i]
		rot := bone.Rest
		if i < len(local) {
			rot = local[i]
		}

		head := bone.Offset
		parentRot := mgl64.QuatIdent()
		if bone.Parent >= 0 && bone.Parent < i {
			parentRot = world[bone.Parent]
			head = joints[bone.Parent].Head.Add(parentRot.Rotate(bone.Offset))
		}

		world[i] = parentRot.Mul(rot).Normalize()
		joints[i] = Joint{
			Name: bone.Name,
			Head: head,
			Tail: head.Add(world[i].Rotate(bone.Tail)),
		}
	}
	return Pose{Joints: joints}
}

// Bounds returns the axis-aligned box around every joint.
func (p Pose) Bounds() (lo, hi mgl64.Vec3) {
	if len(p.Joints) == 0 {
		return
	}
	lo, hi = p.Joints[0].Head, p.Joints[0].Head
	for _, j := range p.Joints {
		for _, v := range [2]mgl64.Vec3{j.Head, j.Tail} {
			for k := 0; k < 3; k++ {
				lo[k] = min(lo[k], v[k])
				hi[k] = max(hi[k], v[k])
			}
		}
	}
	return lo, hi
}
