package list

import (
	"context"
	"time"

	"brevo-connector/internal/brevo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ListService interface {
	GetList(ctx context.Context, id string) (*ContactList, error)
	ListLists(ctx context.Context) ([]ContactList, error)
	SyncFromRemote(ctx context.Context, remote brevo.List) (*ContactList, bool, error)
	ArchiveByRemoteID(ctx context.Context, brevoID int64) (*ContactList, error)
	ResolveRemoteIDs(ctx context.Context, remoteIDs []int64) ([]primitive.ObjectID, error)
	ResolveNames(ctx context.Context, names []string) ([]primitive.ObjectID, error)
	RemoteIDsFor(ctx context.Context, localIDs []primitive.ObjectID) ([]int64, error)
}

type ListServiceImpl struct {
	Repo   ListRepository
	Logger *zap.Logger
}

func NewListService(repo ListRepository, logger *zap.Logger) ListService {
	return &ListServiceImpl{
		Repo:   repo,
		Logger: logger,
	}
}

func (s *ListServiceImpl) GetList(ctx context.Context, id string) (*ContactList, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ListServiceImpl) ListLists(ctx context.Context) ([]ContactList, error) {
	return s.Repo.List(ctx)
}

// SyncFromRemote mirrors one remote list locally and reports whether it
// was newly created.
func (s *ListServiceImpl) SyncFromRemote(ctx context.Context, remote brevo.List) (*ContactList, bool, error) {
	list := &ContactList{
		Name:              remote.Name,
		BrevoID:           remote.ID,
		FolderID:          remote.FolderID,
		TotalSubscribers:  remote.TotalSubscribers,
		TotalBlacklisted:  remote.TotalBlacklisted,
		UniqueSubscribers: remote.UniqueSubscribers,
		Active:            true,
		LastSync:          time.Now(),
	}

	created, err := s.Repo.Upsert(ctx, list)
	if err != nil {
		return nil, false, err
	}

	return list, created, nil
}

// ArchiveByRemoteID deactivates the mirror of a list deleted on the
// remote side. A list we never mirrored is not an error.
func (s *ListServiceImpl) ArchiveByRemoteID(ctx context.Context, brevoID int64) (*ContactList, error) {
	list, err := s.Repo.FindByBrevoID(ctx, brevoID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}

	if err := s.Repo.Archive(ctx, list.ID); err != nil {
		return nil, err
	}
	list.Active = false
	return list, nil
}

// ResolveRemoteIDs maps remote list ids to local list references.
// Unknown ids are dropped, not errored: the list sync will pick them up
// on its next pass.
func (s *ListServiceImpl) ResolveRemoteIDs(ctx context.Context, remoteIDs []int64) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, rid := range remoteIDs {
		list, err := s.Repo.FindByBrevoID(ctx, rid)
		if err != nil {
			return nil, err
		}
		if list == nil {
			s.Logger.Debug("unknown remote list id", zap.Int64("brevo_id", rid))
			continue
		}
		ids = append(ids, list.ID)
	}
	return ids, nil
}

// ResolveNames maps display names to local list references by exact
// match. Names that match nothing are dropped.
func (s *ListServiceImpl) ResolveNames(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, name := range names {
		list, err := s.Repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if list == nil {
			s.Logger.Debug("unknown list name", zap.String("name", name))
			continue
		}
		ids = append(ids, list.ID)
	}
	return ids, nil
}

// RemoteIDsFor returns the remote ids for local list references that
// carry one. Lists not yet pushed to Brevo are skipped.
func (s *ListServiceImpl) RemoteIDsFor(ctx context.Context, localIDs []primitive.ObjectID) ([]int64, error) {
	lists, err := s.Repo.FindByIDs(ctx, localIDs)
	if err != nil {
		return nil, err
	}

	var remoteIDs []int64
	for _, l := range lists {
		if l.BrevoID != 0 {
			remoteIDs = append(remoteIDs, l.BrevoID)
		}
	}
	return remoteIDs, nil
}
