// Package worker periodically copies wallets and categories from the live
// API into the local mirror.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"moneylover/internal/api"
	"moneylover/internal/core"
	"moneylover/internal/log"
)

// Gateway is the slice of the API client the worker needs.
type Gateway interface {
	Refresh(ctx context.Context, s *api.Session) error
	GetWallets(ctx context.Context, s *api.Session) ([]core.Wallet, error)
	GetCategories(ctx context.Context, s *api.Session, walletID string) ([]core.Category, error)
}

// Mirror is the slice of the storage repository the worker needs.
type Mirror interface {
	SaveWallet(ctx context.Context, w core.Wallet) error
	SaveCategory(ctx context.Context, c core.Category) error
}

// Publisher announces mirrored entities; nil disables events.
type Publisher interface {
	PublishEntityUpdate(ctx context.Context, kind, id, runID string) error
}

// MirrorSyncWorker drives one session through repeated mirror refreshes.
// Wallet listing stays sequential; category listing fans out across wallets
// with a bounded group, which is safe because each call only reads the
// access token current at call time.
type MirrorSyncWorker struct {
	gateway     Gateway
	mirror      Mirror
	events      Publisher
	session     *api.Session
	concurrency int
	logger      *log.Logger
}

func NewMirrorSyncWorker(gateway Gateway, mirror Mirror, events Publisher, session *api.Session, concurrency int, logger *log.Logger) *MirrorSyncWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	}
	return &MirrorSyncWorker{
		gateway:     gateway,
		mirror:      mirror,
		events:      events,
		session:     session,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RunOnce performs a single mirror refresh. An expired session is refreshed
// before and, at most once, during the run; a rejected refresh token
// surfaces as an error since only a fresh login can recover.
func (w *MirrorSyncWorker) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	started := time.Now()

	if w.session.ExpiredAt(time.Now()) || w.session.State() == api.StateExpired {
		if err := w.gateway.Refresh(ctx, w.session); err != nil {
			return fmt.Errorf("refresh before sync: %w", err)
		}
	}

	wallets, err := w.listWallets(ctx)
	if err != nil {
		return err
	}

	for _, wallet := range wallets {
		if err := w.mirror.SaveWallet(ctx, wallet); err != nil {
			return fmt.Errorf("mirror wallet: %w", err)
		}
		w.publish(ctx, "wallet", wallet.ID, runID)
	}

	var categoryCount int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	counts := make([]int, len(wallets))
	for i, wallet := range wallets {
		i, wallet := i, wallet
		g.Go(func() error {
			categories, err := w.gateway.GetCategories(gctx, w.session, wallet.ID)
			if err != nil {
				return fmt.Errorf("categories of wallet %s: %w", wallet.ID, err)
			}
			for _, cat := range categories {
				if err := w.mirror.SaveCategory(gctx, cat); err != nil {
					return fmt.Errorf("mirror category %s: %w", cat.ID, err)
				}
				w.publish(gctx, "category", cat.ID, runID)
			}
			counts[i] = len(categories)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, n := range counts {
		categoryCount += n
	}

	w.logger.InfoContext(ctx, "mirror sync complete",
		log.FieldRunID, runID,
		"wallets", len(wallets),
		"categories", categoryCount,
		log.FieldDuration, time.Since(started).Milliseconds())
	return nil
}

// listWallets fetches the wallet list, recovering once from a mid-run
// token expiry by refreshing and reissuing the call.
func (w *MirrorSyncWorker) listWallets(ctx context.Context) ([]core.Wallet, error) {
	wallets, err := w.gateway.GetWallets(ctx, w.session)
	if errors.Is(err, api.ErrSessionExpired) {
		w.logger.WarnContext(ctx, "session expired mid-run, refreshing")
		if err := w.gateway.Refresh(ctx, w.session); err != nil {
			return nil, fmt.Errorf("refresh after expiry: %w", err)
		}
		wallets, err = w.gateway.GetWallets(ctx, w.session)
	}
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

func (w *MirrorSyncWorker) publish(ctx context.Context, kind, id, runID string) {
	if w.events == nil {
		return
	}
	// Event delivery is best effort; the mirror row is already committed.
	if err := w.events.PublishEntityUpdate(ctx, kind, id, runID); err != nil {
		w.logger.WarnContext(ctx, "publish entity update failed",
			"kind", kind, "id", id, log.FieldError, err)
	}
}
