package dynamic

import (
	"dyngrid/internal/core"
	"dyngrid/internal/gridworld"
)

// seenFrom reports whether target would be visible with the agent at pose.
// The live pose is swapped in for the query and restored on return.
func (e *Env) seenFrom(pose gridworld.Pose, target core.Point) bool {
	saved := e.world.Agent()
	defer e.world.SetAgent(saved)
	e.world.SetAgent(pose)
	return e.world.CanSee(target)
}

// goalInView reports whether the goal would be visible from pose.
func (e *Env) goalInView(pose gridworld.Pose) bool {
	return e.seenFrom(pose, e.world.Goal())
}
