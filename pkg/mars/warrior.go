package mars

import "github.com/go-corewar/mars/pkg/redcode"

// warrior is one loaded program's scheduling state: its identity (Pid),
// its p-space key (Pin), and its FIFO process queue. The head of the queue
// is the next process to run.
type warrior struct {
	pid   redcode.Pid
	pin   redcode.Pin
	queue []redcode.Address
}

func (w *warrior) popFront() redcode.Address {
	pc := w.queue[0]
	w.queue = w.queue[1:]
	return pc
}

func (w *warrior) pushBack(pc redcode.Address) {
	w.queue = append(w.queue, pc)
}

func (w *warrior) alive() bool {
	return len(w.queue) > 0
}
