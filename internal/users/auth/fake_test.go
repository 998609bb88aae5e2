// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/bookreview/internal/platform/dberr"
	"github.com/taibuivan/bookreview/internal/users/auth"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	mu     sync.Mutex
	users  map[string]*auth.User
	nextID int64

	// failWith, when set, is returned by every call.
	failWith error
}

func newMemoryUsers(seed ...*auth.User) *memoryUsers {
	repo := &memoryUsers{users: make(map[string]*auth.User)}
	for _, user := range seed {
		_ = repo.Create(context.Background(), user)
	}
	return repo
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	user, ok := m.users[email]
	if !ok {
		return nil, dberr.ErrNotFound
	}

	clone := *user
	clone.Roles = slices.Clone(user.Roles)
	return &clone, nil
}

func (m *memoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return false, m.failWith
	}

	_, ok := m.users[email]
	return ok, nil
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[user.Email]; ok {
		return dberr.ErrConflict
	}

	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()

	stored := *user
	stored.Roles = slices.Clone(user.Roles)
	m.users[user.Email] = &stored
	return nil
}

func (m *memoryUsers) AddRole(_ context.Context, userID int64, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}

	for _, user := range m.users {
		if user.ID == userID {
			if !slices.Contains(user.Roles, role) {
				user.Roles = append(user.Roles, role)
			}
			return nil
		}
	}
	return dberr.ErrNotFound
}

// recordingMailer captures welcome mails.
type recordingMailer struct {
	sent []string
	err  error
}

func (r *recordingMailer) SendWelcome(_ context.Context, to, _ string) error {
	r.sent = append(r.sent, to)
	return r.err
}

// countingObserver counts issued tokens.
type countingObserver struct {
	issued int
}

func (c *countingObserver) ObserveTokenIssued() {
	c.issued++
}
