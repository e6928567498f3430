package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists the full ordered account list. Save replaces the previous
// contents atomically.
type FileStore interface {
	Load() (accts []Account, err error)
	Save(accts []Account) (err error)
}

var ErrStore = errors.New("account store failure")
var ErrStoreMissing = errors.New("account store is missing")

type fileStore struct {
	path string
}

func NewFileStore(path string) FileStore {
	return fileStore{
		path: path,
	}
}

func (fstr fileStore) Load() (accts []Account, err error) {
	var data []byte
	data, err = os.ReadFile(fstr.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = fmt.Errorf("%w: %s", ErrStoreMissing, fstr.path)
	case err != nil:
		err = fmt.Errorf("%w: %s", ErrStore, err)
	default:
		err = json.Unmarshal(data, &accts)
		if err != nil {
			err = fmt.Errorf("%w: %s", ErrStore, err)
		}
	}
	return
}

func (fstr fileStore) Save(accts []Account) (err error) {
	var data []byte
	data, err = json.MarshalIndent(accts, "", "  ")
	if err == nil {
		err = os.MkdirAll(filepath.Dir(fstr.path), 0o755)
	}
	var tmp *os.File
	if err == nil {
		tmp, err = os.CreateTemp(filepath.Dir(fstr.path), ".accounts-*.json")
	}
	if err == nil {
		_, err = tmp.Write(data)
		if errClose := tmp.Close(); err == nil {
			err = errClose
		}
		switch err {
		case nil:
			err = os.Rename(tmp.Name(), fstr.path)
		default:
			_ = os.Remove(tmp.Name())
		}
	}
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrStore, err)
	}
	return
}

type storeMock struct {
	accts    []Account
	failSave bool
	missing  bool
}

// NewStoreMock returns an in-memory FileStore. A nil accts slice simulates a
// missing store file.
func NewStoreMock(accts []Account) FileStore {
	return &storeMock{
		accts:   accts,
		missing: accts == nil,
	}
}

// NewStoreMockFailing behaves like NewStoreMock but every Save attempt fails.
func NewStoreMockFailing(accts []Account) FileStore {
	return &storeMock{
		accts:    accts,
		failSave: true,
		missing:  accts == nil,
	}
}

func (sm *storeMock) Load() (accts []Account, err error) {
	switch sm.missing {
	case true:
		err = ErrStoreMissing
	default:
		accts = sm.accts
	}
	return
}

func (sm *storeMock) Save(accts []Account) (err error) {
	switch sm.failSave {
	case true:
		err = ErrStore
	default:
		sm.accts = accts
		sm.missing = false
	}
	return
}
