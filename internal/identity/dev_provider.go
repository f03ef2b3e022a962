package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DevProvider is an in-process Provider for local runs and tests. It keeps
// identity records in memory and hashes the placeholder credential the same
// way a real account store would.
type DevProvider struct {
	mu      sync.Mutex
	byID    map[string]*devRecord
	byEmail map[string]string
}

type devRecord struct {
	user           User
	credentialHash string
}

func NewDevProvider() *DevProvider {
	return &DevProvider{
		byID:    make(map[string]*devRecord),
		byEmail: make(map[string]string),
	}
}

func (p *DevProvider) CreateUser(ctx context.Context, email, firstName, lastName string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, taken := p.byEmail[email]; taken {
		return "", fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("identity: hash placeholder credential: %w", err)
	}

	id := "idn_" + uuid.NewString()
	p.byID[id] = &devRecord{
		user: User{
			ID:        id,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		},
		credentialHash: string(hash),
	}
	p.byEmail[email] = id
	return id, nil
}

func (p *DevProvider) UpdateName(ctx context.Context, identityID, firstName, lastName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.byID[identityID]
	if !ok {
		return ErrIdentityNotFound
	}
	rec.user.FirstName = firstName
	rec.user.LastName = lastName
	return nil
}

func (p *DevProvider) BanUser(ctx context.Context, identityID string) error {
	return p.setBanned(identityID, true)
}

func (p *DevProvider) UnbanUser(ctx context.Context, identityID string) error {
	return p.setBanned(identityID, false)
}

func (p *DevProvider) DeleteUser(ctx context.Context, identityID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.byID[identityID]
	if !ok {
		return ErrIdentityNotFound
	}
	delete(p.byEmail, rec.user.Email)
	delete(p.byID, identityID)
	return nil
}

// GetUser is a test hook; the real provider exposes no read API we need.
func (p *DevProvider) GetUser(identityID string) (User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.byID[identityID]
	if !ok {
		return User{}, false
	}
	return rec.user, true
}

// Count is a test hook.
func (p *DevProvider) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}

func (p *DevProvider) setBanned(identityID string, banned bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.byID[identityID]
	if !ok {
		return ErrIdentityNotFound
	}
	rec.user.Banned = banned
	return nil
}
