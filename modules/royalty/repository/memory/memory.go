// Package memory provides an in-memory royalty datagateway. Data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/datagateway"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/samber/lo"
)

var _ datagateway.RoyaltyDataGateway = (*Repository)(nil)

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

type state struct {
	assets        map[protocol.AssetID]entity.Asset
	versions      map[protocol.AssetID][]entity.RoyaltyVersion
	notifications []entity.Notification
	checkpoint    *entity.ArchiveCheckpoint
}

func newState() *state {
	return &state{
		assets:   make(map[protocol.AssetID]entity.Asset),
		versions: make(map[protocol.AssetID][]entity.RoyaltyVersion),
	}
}

func (s *state) clone() *state {
	c := &state{
		assets:        make(map[protocol.AssetID]entity.Asset, len(s.assets)),
		versions:      make(map[protocol.AssetID][]entity.RoyaltyVersion, len(s.versions)),
		notifications: append(make([]entity.Notification, 0, len(s.notifications)+1), s.notifications...),
	}
	for k, v := range s.assets {
		c.assets[k] = v
	}
	for k, v := range s.versions {
		c.versions[k] = append([]entity.RoyaltyVersion{}, v...)
	}
	if s.checkpoint != nil {
		c.checkpoint = lo.ToPtr(*s.checkpoint)
	}
	return c
}

type store struct {
	mu    sync.RWMutex
	state *state

	// txMu serializes writers. A transaction holds it from BeginRoyaltyTx until Commit or Rollback,
	// so writes outside the transaction must not be made from the goroutine holding it.
	txMu sync.Mutex
}

// Repository is a RoyaltyDataGateway backed by memory.
// Writes of a transaction are staged on a copy of the state and swapped in on commit.
type Repository struct {
	store *store

	// tx is the staged state, nil when not in a transaction.
	tx *state
}

func NewRepository() *Repository {
	return &Repository{
		store: &store{state: newState()},
	}
}

// read runs fn with the current visible state.
func (r *Repository) read(fn func(s *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return fn(r.store.state)
}

// write runs fn on the staged state, or on the shared state when not in a transaction.
// fn must validate before mutating so a failed write leaves no partial effect.
func (r *Repository) write(fn func(s *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.state)
}

func (r *Repository) BeginRoyaltyTx(ctx context.Context) (datagateway.RoyaltyDataGatewayWithTx, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}
	r.store.txMu.Lock()
	r.store.mu.RLock()
	staged := r.store.state.clone()
	r.store.mu.RUnlock()
	return &Repository{store: r.store, tx: staged}, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	r.store.mu.Lock()
	r.store.state = r.tx
	r.store.mu.Unlock()
	r.tx = nil
	r.store.txMu.Unlock()
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	r.tx = nil
	r.store.txMu.Unlock()
	return nil
}

func (r *Repository) GetAsset(ctx context.Context, assetId protocol.AssetID) (*entity.Asset, error) {
	var result *entity.Asset
	err := r.read(func(s *state) error {
		asset, ok := s.assets[assetId]
		if !ok {
			return errors.WithStack(errs.NotFound)
		}
		result = &asset
		return nil
	})
	return result, err
}

func (r *Repository) GetAssetsByIds(ctx context.Context, assetIds []protocol.AssetID) (map[protocol.AssetID]*entity.Asset, error) {
	result := make(map[protocol.AssetID]*entity.Asset, len(assetIds))
	err := r.read(func(s *state) error {
		for _, id := range assetIds {
			if asset, ok := s.assets[id]; ok {
				result[id] = &asset
			}
		}
		return nil
	})
	return result, err
}

func (r *Repository) GetRoyaltyHistory(ctx context.Context, assetId protocol.AssetID) ([]*entity.RoyaltyVersion, error) {
	var result []*entity.RoyaltyVersion
	err := r.read(func(s *state) error {
		versions := append([]entity.RoyaltyVersion{}, s.versions[assetId]...)
		sort.Slice(versions, func(i, j int) bool { return versions[i].Version < versions[j].Version })
		result = make([]*entity.RoyaltyVersion, 0, len(versions))
		for i := range versions {
			result = append(result, &versions[i])
		}
		return nil
	})
	return result, err
}

func (r *Repository) GetNotifications(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, error) {
	var result []*entity.Notification
	err := r.read(func(s *state) error {
		result = make([]*entity.Notification, 0)
		skipped := int32(0)
		for _, n := range s.notifications {
			if !filter.Match(n) {
				continue
			}
			if skipped < filter.Offset {
				skipped++
				continue
			}
			if filter.Limit >= 0 && int32(len(result)) >= filter.Limit {
				break
			}
			if n.TokenPaid != nil {
				n.TokenPaid = lo.ToPtr(*n.TokenPaid)
			}
			result = append(result, lo.ToPtr(n))
		}
		return nil
	})
	return result, err
}

func (r *Repository) GetArchiveCheckpoint(ctx context.Context) (*entity.ArchiveCheckpoint, error) {
	var result *entity.ArchiveCheckpoint
	err := r.read(func(s *state) error {
		if s.checkpoint == nil {
			return errors.WithStack(errs.NotFound)
		}
		result = lo.ToPtr(*s.checkpoint)
		return nil
	})
	return result, err
}

func (r *Repository) CreateAsset(ctx context.Context, asset *entity.Asset) error {
	return r.write(func(s *state) error {
		if _, ok := s.assets[asset.AssetID]; ok {
			return errors.Wrapf(errs.Conflict, "asset %s already exists", asset.AssetID)
		}
		s.assets[asset.AssetID] = *asset
		return nil
	})
}

func (r *Repository) UpdateAssetRoyalty(ctx context.Context, asset *entity.Asset) error {
	return r.write(func(s *state) error {
		current, ok := s.assets[asset.AssetID]
		if !ok {
			return errors.Wrapf(errs.NotFound, "asset %s", asset.AssetID)
		}
		current.Royalty = asset.Royalty
		current.Version = asset.Version
		current.UpdatedAt = asset.UpdatedAt
		s.assets[asset.AssetID] = current
		return nil
	})
}

func (r *Repository) CreateRoyaltyVersion(ctx context.Context, version *entity.RoyaltyVersion) error {
	return r.write(func(s *state) error {
		if _, ok := s.assets[version.AssetID]; !ok {
			return errors.Wrapf(errs.NotFound, "asset %s", version.AssetID)
		}
		for _, v := range s.versions[version.AssetID] {
			if v.Version == version.Version {
				return errors.Wrapf(errs.Conflict, "royalty version %d of asset %s already exists", version.Version, version.AssetID)
			}
		}
		s.versions[version.AssetID] = append(s.versions[version.AssetID], *version)
		return nil
	})
}

func (r *Repository) CreateNotification(ctx context.Context, notification *entity.Notification) (int64, error) {
	var sequence int64
	err := r.write(func(s *state) error {
		sequence = int64(len(s.notifications)) + 1
		n := *notification
		n.Sequence = sequence
		if n.TokenPaid != nil {
			n.TokenPaid = lo.ToPtr(*n.TokenPaid)
		}
		s.notifications = append(s.notifications, n)
		return nil
	})
	return sequence, err
}

func (r *Repository) SetArchiveCheckpoint(ctx context.Context, checkpoint *entity.ArchiveCheckpoint) error {
	return r.write(func(s *state) error {
		s.checkpoint = lo.ToPtr(*checkpoint)
		return nil
	})
}
