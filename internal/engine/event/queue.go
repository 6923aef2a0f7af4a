package event

import (
	"github.com/Faultbox/voxelspace/internal/engine/camera"
)

// Queue collects commands between frames. The frame loop drains it once
// per frame before rendering, so a frame always sees a single view state.
type Queue struct {
	cmds []camera.Command
}

// Push appends a command.
func (q *Queue) Push(cmd camera.Command) {
	q.cmds = append(q.cmds, cmd)
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Drain returns pending commands in arrival order and empties the queue.
// The returned slice is valid until the next Push.
func (q *Queue) Drain() []camera.Command {
	cmds := q.cmds
	q.cmds = q.cmds[:0]
	return cmds
}
