package usecase

import (
	"context"
	"errors"
	"sync"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/pkg/logger"
	"hundvakt-service/pkg/metrics"
)

// ErrImportUnavailable is returned when an import is requested but its
// preconditions do not hold or the offer was already consumed this session.
var ErrImportUnavailable = errors.New("import not available")

// SessionManager owns both backends and hands out one Session per account
// id. The empty account id is the device session over the local store.
// Opening a session for one backend never reads or writes the other, so
// local data survives logins and logouts untouched.
type SessionManager struct {
	local   repository.DocumentRepository
	remote  repository.DocumentRepository
	logger  logger.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager creates a new session manager over the two backends
func NewSessionManager(local, remote repository.DocumentRepository, log logger.Logger, m *metrics.Metrics) *SessionManager {
	return &SessionManager{
		local:    local,
		remote:   remote,
		logger:   log,
		metrics:  m,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live session for the account id, opening it on first
// use. accountID "" selects the local backend.
func (sm *SessionManager) Session(ctx context.Context, accountID string) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s, ok := sm.sessions[accountID]; ok {
		return s, nil
	}

	s := sm.open(ctx, accountID)
	sm.sessions[accountID] = s
	return s, nil
}

// Reset drops the cached session for the account id. The next request opens
// a fresh session, which re-evaluates the one-shot hooks.
func (sm *SessionManager) Reset(accountID string) {
	sm.mu.Lock()
	delete(sm.sessions, accountID)
	sm.mu.Unlock()
}

// open selects the backend, loads the initial snapshot and runs the one-shot
// migration hook. A failed remote load falls back to the empty document and
// is never surfaced past the log.
func (sm *SessionManager) open(ctx context.Context, accountID string) *Session {
	repo := sm.local
	remoteActive := accountID != ""
	if remoteActive {
		repo = sm.remote
	}

	doc, err := repo.Load(ctx, accountID)
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		doc = entity.NewDocument()
	case err != nil:
		sm.logger.Error("Document load failed, starting from empty",
			"account", accountID,
			"error", err)
		doc = entity.NewDocument()
	}

	s := &Session{
		accountID:    accountID,
		remoteActive: remoteActive,
		gateway:      NewGateway(repo, accountID, doc, sm.logger, sm.metrics),
		importer:     NewImporter(sm.local, sm.logger, sm.metrics),
		logger:       sm.logger,
	}

	// One-shot lifecycle hook: legacy migration right after the initial
	// load resolves. A failure leaves the flag unset so a later session
	// can retry.
	migrator := NewMigrator(sm.logger, sm.metrics)
	if ran, err := migrator.Run(ctx, s.gateway); err == nil {
		s.migrationRan = ran
	}

	return s
}

// Session is one account's live binding to a single backend. The backend
// choice is fixed for the session's lifetime.
type Session struct {
	accountID    string
	remoteActive bool
	gateway      *Gateway
	importer     *Importer
	logger       logger.Logger

	mu           sync.Mutex
	migrationRan bool
	importAsked  bool
}

// AccountID returns the session's account id, "" for the device session.
func (s *Session) AccountID() string {
	return s.accountID
}

// RemoteActive reports whether this session persists to the remote backend.
func (s *Session) RemoteActive() bool {
	return s.remoteActive
}

// Gateway returns the session's mutation gateway.
func (s *Session) Gateway() *Gateway {
	return s.gateway
}

// MigrationRan reports whether this session committed a legacy migration.
func (s *Session) MigrationRan() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrationRan
}

// ImportOffered reports whether the local-to-remote import should be offered
// right now: remote active, remote customers and dogs empty, local data
// present, and not already offered this session.
func (s *Session) ImportOffered(ctx context.Context) bool {
	s.mu.Lock()
	asked := s.importAsked
	s.mu.Unlock()

	if asked || !s.remoteActive {
		return false
	}
	return s.importer.CanImport(ctx, s.gateway)
}

// AcceptImport consumes the offer and copies the local snapshot into the
// remote document. On failure nothing is applied and the offer stays open.
func (s *Session) AcceptImport(ctx context.Context) error {
	if !s.ImportOffered(ctx) {
		return ErrImportUnavailable
	}
	if err := s.importer.Run(ctx, s.gateway); err != nil {
		return err
	}
	s.mu.Lock()
	s.importAsked = true
	s.mu.Unlock()
	return nil
}

// DeclineImport consumes the offer for the rest of this session. A later
// session re-offers if the preconditions still hold.
func (s *Session) DeclineImport() {
	s.mu.Lock()
	s.importAsked = true
	s.mu.Unlock()
}
