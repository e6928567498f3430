package registry

import (
	"context"
	"fmt"
	"github.com/brityrelay/smtp-relay/util"
	"log/slog"
)

type logging struct {
	svc Service
	log *slog.Logger
}

func NewLogging(svc Service, log *slog.Logger) Service {
	return logging{
		svc: svc,
		log: log,
	}
}

func (l logging) Load() (err error) {
	err = l.svc.Load()
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Load(): accounts=%d, err=%s", len(l.svc.List()), err))
	return
}

func (l logging) List() (accts []Account) {
	accts = l.svc.List()
	l.log.Debug(fmt.Sprintf("registry.List(): %d", len(accts)))
	return
}

func (l logging) Get(id string) (acct Account, err error) {
	acct, err = l.svc.Get(id)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Get(%s): err=%s", id, err))
	return
}

func (l logging) IsActive(id string) (active bool) {
	active = l.svc.IsActive(id)
	l.log.Debug(fmt.Sprintf("registry.IsActive(%s): %t", id, active))
	return
}

func (l logging) Create(acct Account) (err error) {
	err = l.svc.Create(acct)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Create(id=%s, email=%s): err=%s", acct.Id, acct.Email, err))
	return
}

func (l logging) Update(id string, acct Account) (err error) {
	err = l.svc.Update(id, acct)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Update(id=%s, email=%s): err=%s", id, acct.Email, err))
	return
}

func (l logging) Delete(id string) (err error) {
	err = l.svc.Delete(id)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Delete(%s): err=%s", id, err))
	return
}

func (l logging) SetActive(ids []string) (err error) {
	err = l.svc.SetActive(ids)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.SetActive(%v): active=%d, err=%s", ids, len(l.svc.ResolveAll()), err))
	return
}

func (l logging) Activate(id string) (err error) {
	err = l.svc.Activate(id)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Activate(%s): err=%s", id, err))
	return
}

func (l logging) Deactivate(id string) (err error) {
	err = l.svc.Deactivate(id)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Deactivate(%s): err=%s", id, err))
	return
}

func (l logging) Resolve(explicitId, senderAddr string) (acct Account, err error) {
	acct, err = l.svc.Resolve(explicitId, senderAddr)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("registry.Resolve(explicitId=%s, senderAddr=%s): id=%s, err=%s", explicitId, senderAddr, acct.Id, err))
	return
}

func (l logging) ResolveAll() (accts []Account) {
	accts = l.svc.ResolveAll()
	l.log.Debug(fmt.Sprintf("registry.ResolveAll(): %d", len(accts)))
	return
}
