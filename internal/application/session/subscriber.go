package session

import "sync"

// subscriber buzón ordenado por suscriptor: encola sin bloquear al Holder y
// entrega en orden de producción, sin descartar transiciones.
type subscriber struct {
	out  chan Snapshot
	wake chan struct{}
	done chan struct{}

	mu    sync.Mutex
	queue []Snapshot
	final bool // entregar lo encolado y cerrar out
}

func newSubscriber() *subscriber {
	return &subscriber{
		out:  make(chan Snapshot),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (s *subscriber) push(snap Snapshot) {
	s.mu.Lock()
	s.queue = append(s.queue, snap)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// finish cierra el buzón después de entregar lo ya encolado.
func (s *subscriber) finish() {
	s.mu.Lock()
	s.final = true
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final && len(s.queue) == 0
}

func (s *subscriber) next() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return Snapshot{}, false
	}
	snap := s.queue[0]
	s.queue[0] = Snapshot{}
	s.queue = s.queue[1:]
	return snap, true
}

func (s *subscriber) run() {
	defer close(s.out)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for {
			snap, ok := s.next()
			if !ok {
				break
			}
			select {
			case s.out <- snap:
			case <-s.done:
				return
			}
		}
		if s.finished() {
			return
		}
	}
}
