// Package sync reconciles provider data with the local database.
// Records are matched on their natural keys, missing ones are created,
// existing ones updated. A malformed or failing record is logged and
// skipped, it never aborts the rest of the pass.
package sync

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/provider/openf1"
	"github.com/f1stats/f1stats-go/pkg/provider/replay"
)

// Result summarizes one sync pass. Total counts all provider records,
// including skipped ones, so Created+Updated <= Total always holds.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

func (r *Result) merge(other *Result) {
	r.Created += other.Created
	r.Updated += other.Updated
	r.Total += other.Total
}

type Syncer struct {
	pool   *pgxpool.Pool
	openF1 *openf1.Client
	replay *replay.Client
	log    *log.Logger
}

type Option func(*Syncer)

func WithReplayClient(c *replay.Client) Option {
	return func(s *Syncer) {
		s.replay = c
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Syncer) {
		s.log = l
	}
}

func NewSyncer(pool *pgxpool.Pool, openF1 *openf1.Client, opts ...Option) *Syncer {
	ret := &Syncer{
		pool:   pool,
		openF1: openF1,
		log:    log.Default().Named("sync"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
