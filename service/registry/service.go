package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Account is a single impersonated web-mail identity: the address it sends as
// plus the captured browser session (cookies and request headers) replayed on
// every outbound call.
type Account struct {
	Id          string            `json:"account_id"`
	Email       string            `json:"email"`
	DisplayName string            `json:"display_name"`
	Cookies     map[string]string `json:"cookies"`
	Headers     map[string]string `json:"headers"`
}

type Service interface {

	// Load reads the account store into memory, creating a default store first
	// when none exists. Fails when the store yields zero accounts.
	Load() (err error)

	List() (accts []Account)

	Get(id string) (acct Account, err error)

	IsActive(id string) (active bool)

	Create(acct Account) (err error)

	Update(id string, acct Account) (err error)

	Delete(id string) (err error)

	// SetActive replaces the active set. An empty ids slice activates every
	// configured account. When none of the given ids is known the active set
	// is left unchanged and an error is returned.
	SetActive(ids []string) (err error)

	Activate(id string) (err error)

	Deactivate(id string) (err error)

	// Resolve picks a single active account: the explicit id when given (which
	// must be active), else the active account matching the sender address
	// case-insensitively, else the first active account in stored order.
	Resolve(explicitId, senderAddr string) (acct Account, err error)

	// ResolveAll returns every active account in stored order.
	ResolveAll() (accts []Account)
}

var ErrNoAccount = errors.New("no matching account available")
var ErrNotFound = errors.New("account not found")
var ErrConflict = errors.New("account already exists")

type svc struct {
	store  FileStore
	mx     sync.RWMutex
	accts  []Account
	idx    map[string]int
	active map[string]bool
}

func NewService(store FileStore) Service {
	return &svc{
		store:  store,
		idx:    make(map[string]int),
		active: make(map[string]bool),
	}
}

// defaultAccount seeds a fresh store so an operator has a record to fill in.
var defaultAccount = Account{
	Id:          "account_1",
	Email:       "account1@brityworks.com",
	DisplayName: "Account 1",
	Cookies:     map[string]string{},
	Headers:     map[string]string{},
}

func (s *svc) Load() (err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	var accts []Account
	accts, err = s.store.Load()
	switch {
	case errors.Is(err, ErrStoreMissing):
		accts = []Account{defaultAccount}
		err = s.store.Save(accts)
	}
	if err == nil && len(accts) == 0 {
		err = fmt.Errorf("%w: the store contains no accounts", ErrNoAccount)
	}
	if err == nil {
		s.accts = accts
		s.idx = make(map[string]int, len(accts))
		for i, acct := range accts {
			s.idx[acct.Id] = i
		}
	}
	return
}

func (s *svc) List() (accts []Account) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	accts = make([]Account, len(s.accts))
	copy(accts, s.accts)
	return
}

func (s *svc) Get(id string) (acct Account, err error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	i, found := s.idx[id]
	switch found {
	case true:
		acct = s.accts[i]
	default:
		err = fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return
}

func (s *svc) IsActive(id string) (active bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	active = s.active[id]
	return
}

func (s *svc) Create(acct Account) (err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	_, found := s.idx[acct.Id]
	switch found {
	case true:
		err = fmt.Errorf("%w: %s", ErrConflict, acct.Id)
	default:
		s.accts = append(s.accts, acct)
		s.idx[acct.Id] = len(s.accts) - 1
		err = s.store.Save(s.accts)
	}
	return
}

func (s *svc) Update(id string, acct Account) (err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	i, found := s.idx[id]
	if found && id != acct.Id {
		if _, taken := s.idx[acct.Id]; taken {
			err = fmt.Errorf("%w: %s", ErrConflict, acct.Id)
			return
		}
	}
	switch found {
	case true:
		s.accts[i] = acct
		if id != acct.Id {
			delete(s.idx, id)
			s.idx[acct.Id] = i
			// the active set follows a rename
			if s.active[id] {
				delete(s.active, id)
				s.active[acct.Id] = true
			}
		}
		err = s.store.Save(s.accts)
	default:
		err = fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return
}

func (s *svc) Delete(id string) (err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	i, found := s.idx[id]
	switch found {
	case true:
		s.accts = append(s.accts[:i], s.accts[i+1:]...)
		delete(s.idx, id)
		delete(s.active, id)
		for j := i; j < len(s.accts); j++ {
			s.idx[s.accts[j].Id] = j
		}
		err = s.store.Save(s.accts)
	default:
		err = fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return
}

func (s *svc) SetActive(ids []string) (err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	switch len(ids) {
	case 0:
		next := make(map[string]bool, len(s.accts))
		for _, acct := range s.accts {
			next[acct.Id] = true
		}
		s.active = next
	default:
		next := make(map[string]bool, len(ids))
		for _, id := range ids {
			if _, found := s.idx[id]; found {
				next[id] = true
			}
		}
		switch len(next) {
		case 0:
			err = fmt.Errorf("%w: none of %v", ErrNotFound, ids)
		default:
			s.active = next
		}
	}
	return
}

func (s *svc) Activate(id string) (err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	_, found := s.idx[id]
	switch found {
	case true:
		s.active[id] = true
	default:
		err = fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return
}

func (s *svc) Deactivate(id string) (err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	_, found := s.idx[id]
	switch found {
	case true:
		delete(s.active, id)
	default:
		err = fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return
}

func (s *svc) Resolve(explicitId, senderAddr string) (acct Account, err error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	if explicitId != "" {
		switch s.active[explicitId] {
		case true:
			acct = s.accts[s.idx[explicitId]]
		default:
			err = fmt.Errorf("%w: account %s is not active", ErrNoAccount, explicitId)
		}
		return
	}
	if senderAddr != "" {
		sender := strings.ToLower(strings.TrimSpace(senderAddr))
		for _, a := range s.accts {
			if s.active[a.Id] && strings.ToLower(strings.TrimSpace(a.Email)) == sender {
				acct = a
				return
			}
		}
	}
	for _, a := range s.accts {
		if s.active[a.Id] {
			acct = a
			return
		}
	}
	err = fmt.Errorf("%w: the active set is empty", ErrNoAccount)
	return
}

func (s *svc) ResolveAll() (accts []Account) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	for _, a := range s.accts {
		if s.active[a.Id] {
			accts = append(accts, a)
		}
	}
	return
}
