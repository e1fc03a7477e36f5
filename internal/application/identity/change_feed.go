package identity

import "sync"

// ChangeFeed hub en proceso que anuncia cambios en registros de usuario.
// Los suscriptores lentos no bloquean al publicador: los avisos pendientes se
// fusionan en uno (el suscriptor vuelve a leer el usuario de todos modos).
type ChangeFeed struct {
	mu   sync.Mutex
	subs map[string]map[*feedSub]struct{}
}

type feedSub struct {
	ch chan struct{}
}

// NewChangeFeed construye el hub.
func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{subs: make(map[string]map[*feedSub]struct{})}
}

// Subscribe registra interés en los cambios de userID. Llamar cancel libera la suscripción.
func (f *ChangeFeed) Subscribe(userID string) (<-chan struct{}, func()) {
	s := &feedSub{ch: make(chan struct{}, 1)}

	f.mu.Lock()
	if _, ok := f.subs[userID]; !ok {
		f.subs[userID] = make(map[*feedSub]struct{})
	}
	f.subs[userID][s] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if set, ok := f.subs[userID]; ok {
				delete(set, s)
				if len(set) == 0 {
					delete(f.subs, userID)
				}
			}
		})
	}
	return s.ch, cancel
}

// Publish avisa a todos los suscriptores de userID.
func (f *ChangeFeed) Publish(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for s := range f.subs[userID] {
		select {
		case s.ch <- struct{}{}:
		default:
			// ya hay un aviso pendiente
		}
	}
}

// Subscribers número de suscripciones activas para userID.
func (f *ChangeFeed) Subscribers(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[userID])
}
