package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"droppos/internal/core/apperror"
	"droppos/internal/core/types"
	"droppos/internal/scanner"
	"droppos/pkg/logger"
)

// Session is one active billing session: exactly one cart, owned by one
// terminal operator. All cart access goes through the session so the
// debounced scanner goroutine and HTTP requests never race on the lines.
type Session struct {
	ID            uuid.UUID
	StaffUsername string
	OpenedAt      time.Time

	mu   sync.Mutex
	cart *Cart
	scan *scanner.Buffer
	svc  *Service
}

// View is a read-only snapshot of a session's cart for display.
type View struct {
	SessionID     uuid.UUID   `json:"sessionId"`
	StaffUsername string      `json:"staffUsername"`
	Lines         []Line      `json:"lines"`
	Total         types.Money `json:"total"`
	TotalQuantity int64       `json:"totalQuantity"`
}

// AddItem resolves code and merges qty into the session's cart.
func (s *Session) AddItem(ctx context.Context, code string, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.svc.AddItem(ctx, s.cart, code, qty)
}

// AddScanned adds one unit of a scanned code, same contract as AddItem with
// quantity 1.
func (s *Session) AddScanned(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.svc.AddScanned(ctx, s.cart, code)
}

// ScanInput feeds raw scanner keystrokes into the debounce buffer. Completed
// codes are added to the cart out-of-band; failures are logged because there
// is no caller left to answer by the time the scan completes.
func (s *Session) ScanInput(fragment string) {
	s.scan.Write(fragment)
}

// RemoveLine deletes the cart line at index.
func (s *Session) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.RemoveLine(index)
}

// Clear empties the session's cart.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Snapshot returns a copy of the cart detached from the session. Commit
// reads the snapshot; the live cart is cleared by the caller only after a
// successful commit.
func (s *Session) Snapshot() *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Cart{lines: s.cart.Lines()}
}

// CartView returns the session's cart for display.
func (s *Session) CartView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		SessionID:     s.ID,
		StaffUsername: s.StaffUsername,
		Lines:         s.cart.Lines(),
		Total:         s.cart.Total(),
		TotalQuantity: s.cart.TotalQuantity(),
	}
}

// close stops the scanner debounce timer.
func (s *Session) close() {
	s.scan.Stop()
}

// Registry hands out sessions to the HTTP layer by UUID handle. Carts are
// never persisted; a restart discards all open sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	svc      *Service
	quiet    time.Duration
}

// NewRegistry creates a session registry. quiet configures the scanner
// debounce window; zero selects the default.
func NewRegistry(svc *Service, quiet time.Duration) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		svc:      svc,
		quiet:    quiet,
	}
}

// Open creates a new session with an empty cart.
func (r *Registry) Open(staffUsername string) *Session {
	s := &Session{
		ID:            uuid.New(),
		StaffUsername: staffUsername,
		OpenedAt:      time.Now(),
		cart:          New(),
		svc:           r.svc,
	}
	s.scan = scanner.NewBuffer(r.quiet, func(code string) {
		ctx := context.Background()
		if err := s.AddScanned(ctx, code); err != nil {
			logger.Warn(ctx, "scanned code rejected",
				"session", s.ID,
				"code", code,
				"error", err)
		}
	})

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s
}

// Get retrieves an open session.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, apperror.NewNotFound("session", id.String())
	}
	return s, nil
}

// Close removes a session and discards its cart.
func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return apperror.NewNotFound("session", id.String())
	}
	s.close()
	delete(r.sessions, id)
	return nil
}
