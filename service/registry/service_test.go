package registry

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
)

func newTestService(t *testing.T, store FileStore) Service {
	svc := NewService(store)
	svc = NewLogging(svc, slog.Default())
	require.Nil(t, svc.Load())
	return svc
}

func testAccounts() []Account {
	return []Account{
		{
			Id:          "acc_a",
			Email:       "a@x.com",
			DisplayName: "Account A",
			Cookies:     map[string]string{"EP6_UTOKEN": "token-a"},
			Headers:     map[string]string{"user-agent": "Mozilla/5.0"},
		},
		{
			Id:          "acc_b",
			Email:       "b@x.com",
			DisplayName: "Account B",
		},
		{
			Id:          "acc_c",
			Email:       "c@x.com",
			DisplayName: "Account C",
		},
	}
}

func TestSvc_Load(t *testing.T) {
	cases := map[string]struct {
		store FileStore
		count int
		err   error
	}{
		"configured": {
			store: NewStoreMock(testAccounts()),
			count: 3,
		},
		"missing store gets a default account": {
			store: NewStoreMock(nil),
			count: 1,
		},
		"empty store is fatal": {
			store: NewStoreMock([]Account{}),
			err:   ErrNoAccount,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			svc := NewService(c.store)
			err := svc.Load()
			assert.ErrorIs(t, err, c.err)
			if c.err == nil {
				assert.Len(t, svc.List(), c.count)
			}
		})
	}
}

func TestSvc_SetActive(t *testing.T) {
	cases := map[string]struct {
		ids    []string
		active []string
		err    error
	}{
		"empty selection activates all": {
			ids:    nil,
			active: []string{"acc_a", "acc_b", "acc_c"},
		},
		"valid subset": {
			ids:    []string{"acc_b"},
			active: []string{"acc_b"},
		},
		"invalid ids are skipped": {
			ids:    []string{"acc_b", "nope"},
			active: []string{"acc_b"},
		},
		"all invalid leaves prior set untouched": {
			ids:    []string{"nope", "nada"},
			active: []string{"acc_a", "acc_b", "acc_c"},
			err:    ErrNotFound,
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			svc := newTestService(t, NewStoreMock(testAccounts()))
			require.Nil(t, svc.SetActive(nil))
			err := svc.SetActive(c.ids)
			assert.ErrorIs(t, err, c.err)
			var active []string
			for _, acct := range svc.ResolveAll() {
				active = append(active, acct.Id)
			}
			assert.Equal(t, c.active, active)
		})
	}
}

func TestSvc_Resolve(t *testing.T) {
	cases := map[string]struct {
		active     []string
		explicitId string
		senderAddr string
		id         string
		err        error
	}{
		"explicit id wins": {
			active:     nil,
			explicitId: "acc_c",
			senderAddr: "a@x.com",
			id:         "acc_c",
		},
		"explicit id outside active set fails without fallback": {
			active:     []string{"acc_a"},
			explicitId: "acc_b",
			senderAddr: "a@x.com",
			err:        ErrNoAccount,
		},
		"unknown explicit id fails": {
			active:     nil,
			explicitId: "nope",
			err:        ErrNoAccount,
		},
		"sender match": {
			active:     nil,
			senderAddr: "b@x.com",
			id:         "acc_b",
		},
		"sender match is case and whitespace insensitive": {
			active:     nil,
			senderAddr: " B@X.Com ",
			id:         "acc_b",
		},
		"unknown sender falls back to first active": {
			active:     []string{"acc_b", "acc_c"},
			senderAddr: "unknown@x.com",
			id:         "acc_b",
		},
		"no input yields first active": {
			active: nil,
			id:     "acc_a",
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			svc := newTestService(t, NewStoreMock(testAccounts()))
			require.Nil(t, svc.SetActive(c.active))
			acct, err := svc.Resolve(c.explicitId, c.senderAddr)
			assert.ErrorIs(t, err, c.err)
			assert.Equal(t, c.id, acct.Id)
		})
	}
}

func TestSvc_Resolve_EmptyActiveSet(t *testing.T) {
	svc := newTestService(t, NewStoreMock(testAccounts()))
	require.Nil(t, svc.SetActive(nil))
	require.Nil(t, svc.Deactivate("acc_a"))
	require.Nil(t, svc.Deactivate("acc_b"))
	require.Nil(t, svc.Deactivate("acc_c"))
	_, err := svc.Resolve("", "a@x.com")
	assert.ErrorIs(t, err, ErrNoAccount)
	assert.Empty(t, svc.ResolveAll())
}

func TestSvc_ResolveAll_StoredOrder(t *testing.T) {
	svc := newTestService(t, NewStoreMock(testAccounts()))
	require.Nil(t, svc.SetActive([]string{"acc_c", "acc_a"}))
	accts := svc.ResolveAll()
	require.Len(t, accts, 2)
	assert.Equal(t, "acc_a", accts[0].Id)
	assert.Equal(t, "acc_c", accts[1].Id)
}

func TestSvc_ActivateDeactivate(t *testing.T) {
	svc := newTestService(t, NewStoreMock(testAccounts()))
	require.Nil(t, svc.SetActive([]string{"acc_a"}))
	assert.Nil(t, svc.Activate("acc_b"))
	assert.Nil(t, svc.Activate("acc_b"))
	assert.True(t, svc.IsActive("acc_b"))
	assert.ErrorIs(t, svc.Activate("nope"), ErrNotFound)
	assert.Nil(t, svc.Deactivate("acc_a"))
	assert.Nil(t, svc.Deactivate("acc_a"))
	assert.False(t, svc.IsActive("acc_a"))
	assert.ErrorIs(t, svc.Deactivate("nope"), ErrNotFound)
}

func TestSvc_Crud(t *testing.T) {
	svc := newTestService(t, NewStoreMock(testAccounts()))
	//
	assert.ErrorIs(t, svc.Create(Account{Id: "acc_a"}), ErrConflict)
	assert.Nil(t, svc.Create(Account{Id: "acc_d", Email: "d@x.com"}))
	acct, err := svc.Get("acc_d")
	assert.Nil(t, err)
	assert.Equal(t, "d@x.com", acct.Email)
	//
	assert.ErrorIs(t, svc.Update("nope", Account{Id: "nope"}), ErrNotFound)
	assert.Nil(t, svc.Update("acc_d", Account{Id: "acc_d", Email: "dd@x.com"}))
	acct, err = svc.Get("acc_d")
	assert.Nil(t, err)
	assert.Equal(t, "dd@x.com", acct.Email)
	//
	assert.ErrorIs(t, svc.Delete("nope"), ErrNotFound)
	assert.Nil(t, svc.Delete("acc_d"))
	_, err = svc.Get("acc_d")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSvc_Update_RenameFollowsActiveSet(t *testing.T) {
	svc := newTestService(t, NewStoreMock(testAccounts()))
	require.Nil(t, svc.SetActive([]string{"acc_a"}))
	require.Nil(t, svc.Update("acc_a", Account{Id: "acc_a2", Email: "a@x.com"}))
	assert.False(t, svc.IsActive("acc_a"))
	assert.True(t, svc.IsActive("acc_a2"))
	acct, err := svc.Resolve("acc_a2", "")
	assert.Nil(t, err)
	assert.Equal(t, "acc_a2", acct.Id)
}

func TestSvc_Update_RenameCollision(t *testing.T) {
	svc := newTestService(t, NewStoreMock(testAccounts()))
	err := svc.Update("acc_a", Account{Id: "acc_b", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrConflict)
	// both accounts stay intact and addressable
	acct, err := svc.Get("acc_a")
	assert.Nil(t, err)
	assert.Equal(t, "a@x.com", acct.Email)
	acct, err = svc.Get("acc_b")
	assert.Nil(t, err)
	assert.Equal(t, "b@x.com", acct.Email)
}

func TestSvc_Create_PersistFailureKeepsMemoryState(t *testing.T) {
	svc := newTestService(t, NewStoreMockFailing(testAccounts()))
	err := svc.Create(Account{Id: "acc_d", Email: "d@x.com"})
	assert.ErrorIs(t, err, ErrStore)
	// the mutation is not rolled back, the account stays queryable
	acct, err := svc.Get("acc_d")
	assert.Nil(t, err)
	assert.Equal(t, "d@x.com", acct.Email)
}
