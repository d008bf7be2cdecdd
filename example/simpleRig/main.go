package main

import (
	"fmt"
	"log"

	"github.com/akmonengine/skeleton"
	"github.com/akmonengine/skeleton/pose"
	"github.com/akmonengine/skeleton/transform"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupRig creates a shoulder -> elbow -> wrist chain with a swing animation
func SetupRig() (*skeleton.Joint, *skeleton.Joint, *skeleton.Joint) {
	shoulder := skeleton.NewJoint("Shoulder",
		skeleton.WithRestPose(pose.New(mgl64.Vec3{0, 1.5, 0}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1})),
		skeleton.WithKeyframes(
			skeleton.Keyframe{Frame: 0, Pose: pose.Identity()},
			skeleton.Keyframe{Frame: 30, Pose: pose.New(mgl64.Vec3{}, mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1}), mgl64.Vec3{1, 1, 1})},
		),
	)
	elbow := skeleton.NewJoint("Elbow",
		skeleton.WithRestPose(pose.New(mgl64.Vec3{0, 1, 0}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1})),
		skeleton.WithKeyframes(
			skeleton.Keyframe{Frame: 0, Pose: pose.Identity()},
			skeleton.Keyframe{Frame: 30, Pose: pose.New(mgl64.Vec3{}, mgl64.QuatRotate(mgl64.DegToRad(-45), mgl64.Vec3{0, 0, 1}), mgl64.Vec3{1, 1, 1})},
		),
	)
	wrist := skeleton.NewJoint("Wrist",
		skeleton.WithRestPose(pose.New(mgl64.Vec3{0, 0.8, 0}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1})),
	)

	if err := shoulder.AttachKeep(transform.KeepNone, elbow); err != nil {
		log.Fatal(err)
	}
	if err := elbow.AttachKeep(transform.KeepNone, wrist); err != nil {
		log.Fatal(err)
	}

	return shoulder, elbow, wrist
}

// PlaySwing samples the animation and prints the world placement of each joint
func PlaySwing() {
	fmt.Println("Swing animation")
	fmt.Println("===============")

	shoulder, elbow, wrist := SetupRig()

	first, last := shoulder.KeyframeRange(true)
	fmt.Printf("Frames: %d -> %d\n", first, last)
	for _, entry := range shoulder.Layout() {
		fmt.Printf("  %*s%s (#%d)\n", entry.Depth*2, "", entry.Joint.Name, entry.Index)
	}
	fmt.Println()

	for frame := first; frame <= last; frame += 5 {
		shoulder.LoadPose(frame, true)

		fmt.Printf("--- FRAME %d ---\n", frame)
		for _, j := range []*skeleton.Joint{shoulder, elbow, wrist} {
			fmt.Printf("  %-8s world=%v\n", j.Name, j.PositionWorld())
		}
	}
	fmt.Println()

	// twist the elbow along its bone, then put its rest pose back at the origin
	elbow.LoadRestPose(true)
	elbow.Roll(30, false)
	elbow.WriteRestPose(false, transform.KeepAll)
	shoulder.ApplyRestposePosition(nil, false)

	shoulder.LoadPose(15, true)
	fmt.Printf("After rebase, frame 15:\n")
	fmt.Printf("  Shoulder rest: %v\n", shoulder.RestPose().Position)
	fmt.Printf("  Wrist world:   %v\n", wrist.PositionWorld())
}

func main() {
	PlaySwing()
}
