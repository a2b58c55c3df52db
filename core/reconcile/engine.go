package reconcile

import (
	"context"
	"strings"

	"stream-manager/core/utils"

	"go.uber.org/zap"
)

// Engine converges duplicate stream rows onto winning field values.
// It is not safe against concurrent writers of the same user's rows; a
// pass assumes exclusive ownership from read to write.
type Engine struct {
	store Store
	log   *zap.Logger
	opts  Options
}

// New creates an engine. A nil logger disables logging.
func New(store Store, log *zap.Logger, opts Options) *Engine {
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, log: log, opts: opts}
}

// ReconcileAll runs the name, channel, and metadata passes for one user,
// in that order, and returns the per-field update counts. A non-zero
// providerID narrows every pass to that provider's rows. Passes for
// ignored fields are skipped entirely, including their row loads.
//
// A storage failure propagates immediately with the counts applied so
// far; rerunning after a partial failure converges to the same end state.
func (e *Engine) ReconcileAll(ctx context.Context, userID, providerID uint64) (Summary, error) {
	var sum Summary

	if !e.opts.Ignore.Has(FieldName) {
		n, err := e.reconcileNames(ctx, userID, providerID)
		sum.Names = n
		if err != nil {
			return sum, err
		}
	}

	if !e.opts.Ignore.Has(FieldChannel) {
		n, err := e.reconcileChannels(ctx, userID, providerID)
		sum.Channels = n
		if err != nil {
			return sum, err
		}
	}

	if !e.opts.Ignore.Has(FieldLogo) || !e.opts.Ignore.Has(FieldTvgID) {
		logos, ids, err := e.reconcileMetadata(ctx, userID, providerID)
		sum.Logos = logos
		sum.TvgIDs = ids
		if err != nil {
			return sum, err
		}
	}

	e.log.Debug("reconciliation finished",
		zap.Uint64("user_id", userID),
		zap.Uint64("provider_id", providerID),
		zap.Int("updated", sum.Total()),
	)

	return sum, nil
}

// reconcileNames converges the display name of every uncustomized row in
// a group to the group's most recent genuine edit. Rows that carry a
// custom name of their own are sticky and never overwritten.
func (e *Engine) reconcileNames(ctx context.Context, userID, providerID uint64) (int, error) {
	rows, err := e.loadRows(ctx, userID, providerID, []string{"id", "orig_name", "name", "type_id"})
	if err != nil {
		return 0, err
	}

	key := func(r Row) string { return nameKey(r.OrigName, r.TypeID) }
	best := bestByKey(rows, key, customName, func(r Row) string { return strings.TrimSpace(r.Name) })

	var updates []Update
	for _, r := range rows {
		if customName(r) {
			continue
		}
		winner, ok := best[key(r)]
		if !ok || winner == r.Name {
			continue
		}
		updates = append(updates, Update{RowID: r.ID, Value: winner})
	}

	return e.chunkedUpdate(ctx, FieldName, updates)
}

// reconcileChannels applies the name policy to channel numbers: the most
// recent row with an assigned channel wins, rows without one converge to
// it, and an assigned channel is never overwritten.
func (e *Engine) reconcileChannels(ctx context.Context, userID, providerID uint64) (int, error) {
	rows, err := e.loadRows(ctx, userID, providerID, []string{"id", "name", "channel"})
	if err != nil {
		return 0, err
	}

	key := func(r Row) string { return metaKey(r.Name) }
	best := bestByKey(rows, key, customChannel, func(r Row) string { return strings.TrimSpace(r.Channel) })

	var updates []Update
	for _, r := range rows {
		if customChannel(r) {
			continue
		}
		winner, ok := best[key(r)]
		if !ok || winner == r.Channel {
			continue
		}
		updates = append(updates, Update{RowID: r.ID, Value: winner})
	}

	return e.chunkedUpdate(ctx, FieldChannel, updates)
}

// reconcileMetadata converges tvg-logo and EPG id per display name group.
// The two winners are selected independently, and unlike names there is
// no sticky exception: logos and EPG ids are provider metadata, so every
// differing row converges to the group's value.
func (e *Engine) reconcileMetadata(ctx context.Context, userID, providerID uint64) (logos, ids int, err error) {
	rows, err := e.loadRows(ctx, userID, providerID, []string{"id", "name", "tvg_logo", "tvg_id"})
	if err != nil {
		return 0, 0, err
	}

	key := func(r Row) string { return metaKey(r.Name) }

	if !e.opts.Ignore.Has(FieldLogo) {
		best := bestByKey(rows, key,
			func(r Row) bool { return strings.TrimSpace(r.TvgLogo) != "" },
			func(r Row) string { return r.TvgLogo })

		var updates []Update
		for _, r := range rows {
			if winner, ok := best[key(r)]; ok && winner != r.TvgLogo {
				updates = append(updates, Update{RowID: r.ID, Value: winner})
			}
		}
		logos, err = e.chunkedUpdate(ctx, FieldLogo, updates)
		if err != nil {
			return logos, 0, err
		}
	}

	if !e.opts.Ignore.Has(FieldTvgID) {
		best := bestByKey(rows, key,
			func(r Row) bool { return strings.TrimSpace(r.TvgID) != "" },
			func(r Row) string { return r.TvgID })

		var updates []Update
		for _, r := range rows {
			if winner, ok := best[key(r)]; ok && winner != r.TvgID {
				updates = append(updates, Update{RowID: r.ID, Value: winner})
			}
		}
		ids, err = e.chunkedUpdate(ctx, FieldTvgID, updates)
	}

	return logos, ids, err
}

// loadRows loads one pass's column projection for the user, newest first.
// NULL columns degrade to the empty string so data anomalies fail the
// custom-value tests instead of erroring.
func (e *Engine) loadRows(ctx context.Context, userID, providerID uint64, columns []string) ([]Row, error) {
	where := Condition{"user_id": userID}
	if providerID != 0 {
		where["provider_id"] = providerID
	}

	// updated_at DESC puts NULL (never modified) rows last on both MySQL
	// and SQLite; id DESC breaks the remaining ties.
	order := []OrderBy{
		{Column: "updated_at", Desc: true},
		{Column: "id", Desc: true},
	}

	raw, err := e.store.SelectRows(ctx, e.opts.Table, columns, where, order)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, Row{
			ID:       utils.ToUint64(m["id"]),
			OrigName: utils.ToString(m["orig_name"]),
			Name:     utils.ToString(m["name"]),
			TypeID:   utils.ToInt(m["type_id"]),
			Channel:  utils.ToString(m["channel"]),
			TvgLogo:  utils.ToString(m["tvg_logo"]),
			TvgID:    utils.ToString(m["tvg_id"]),
		})
	}
	return rows, nil
}
