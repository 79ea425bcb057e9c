package service

import (
	"context"
	"sync"

	"qzone/internal/model"
	"qzone/internal/repository"
)

// memUserRepo enforces username uniqueness atomically inside Create, like the real unique constraint
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User

	findHook func() // runs after FindByUsername reads, before it returns
	err      error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	u, ok := r.users[username]
	r.mu.Unlock()
	if r.findHook != nil {
		r.findHook()
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) FindByUsernameAndRole(_ context.Context, username string, role model.Role) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok || u.Role != role {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) List(_ context.Context) ([]model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}

type memSectorRepo struct {
	history    []model.InfectionRecord
	resource   *model.ResourceData
	activity   *model.SectorActivity
	resources  []model.ResourceData
	activities []model.SectorActivity

	gotSector string
	gotLimit  int
	err       error
}

func (r *memSectorRepo) InfectionHistory(_ context.Context, sector string, limit int) ([]model.InfectionRecord, error) {
	r.gotSector, r.gotLimit = sector, limit
	return r.history, r.err
}

func (r *memSectorRepo) LatestResource(_ context.Context, sector string) (*model.ResourceData, error) {
	r.gotSector = sector
	return r.resource, r.err
}

func (r *memSectorRepo) LatestActivity(_ context.Context, _ string) (*model.SectorActivity, error) {
	return r.activity, r.err
}

func (r *memSectorRepo) ReplaceInfectionHistory(_ context.Context, records []model.InfectionRecord) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.history = records
	return int64(len(records)), nil
}

func (r *memSectorRepo) ReplaceResources(_ context.Context, resources []model.ResourceData, activity []model.SectorActivity) error {
	if r.err != nil {
		return r.err
	}
	r.resources, r.activities = resources, activity
	return nil
}
