package handler

import (
	"team-availability-api/internal/store"
	"team-availability-api/internal/wire"
)

type Handler struct {
	store  *store.Store
	secret string
}

var _ wire.AvailabilityServer = (*Handler)(nil)

func New(st *store.Store, secret string) *Handler {
	return &Handler{store: st, secret: secret}
}
