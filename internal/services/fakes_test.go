package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gorm.io/gorm"

	"nwptourism/internal/geo"
	"nwptourism/internal/models/db_models"
	"nwptourism/internal/repositories"
)

// testGate is a simplified province outline: lat 7.0..8.5, lon 79.7..80.6.
func testGate() *geo.Gate {
	g, err := geo.NewGate(orb.Polygon{{
		{79.7, 7.0}, {80.6, 7.0}, {80.6, 8.5}, {79.7, 8.5}, {79.7, 7.0},
	}}, nil)
	if err != nil {
		panic(err)
	}
	return g
}

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	items     []db_models.Feedback
	createErr error
	listErr   error
	updateErr error
	calls     int
}

func (r *fakeFeedbackRepo) CreateFeedback(_ context.Context, f *db_models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	r.items = append(r.items, *f)
	return nil
}

func (r *fakeFeedbackRepo) ListFeedback(context.Context) ([]db_models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := append([]db_models.Feedback(nil), r.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFeedbackRepo) UpdateStatus(_ context.Context, id uuid.UUID, status db_models.FeedbackStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeFeedbackRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeAssetRepo struct {
	items     []db_models.TourismAsset
	failNames map[string]bool
	listErr   error
}

func (r *fakeAssetRepo) CreateAsset(_ context.Context, a *db_models.TourismAsset) error {
	if r.failNames[a.Name] {
		return errors.New("insert failed")
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.items = append(r.items, *a)
	return nil
}

func (r *fakeAssetRepo) ListAssets(context.Context) ([]db_models.TourismAsset, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.items, nil
}

func (r *fakeAssetRepo) CountByCategory(context.Context) ([]repositories.CategoryCount, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	counts := map[string]int64{}
	for _, a := range r.items {
		counts[a.Category]++
	}
	var out []repositories.CategoryCount
	for k, v := range counts {
		out = append(out, repositories.CategoryCount{Category: k, Count: v})
	}
	return out, nil
}

type fakeUploader struct {
	url     string
	err     error
	folders []string
}

func (u *fakeUploader) Upload(_ context.Context, folder string, _ *Upload) (string, error) {
	u.folders = append(u.folders, folder)
	return u.url, u.err
}

type recordingNotifier struct {
	events chan FeedbackEvent
	err    error
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{events: make(chan FeedbackEvent, 8), err: err}
}

func (n *recordingNotifier) FeedbackSubmitted(_ context.Context, ev FeedbackEvent) error {
	n.events <- ev
	return n.err
}

type fakeAdminRepo struct {
	users map[string]db_models.AdminUser
	err   error
}

func (r *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*db_models.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeAdminRepo) Upsert(_ context.Context, u *db_models.AdminUser) error {
	if r.err != nil {
		return r.err
	}
	if r.users == nil {
		r.users = map[string]db_models.AdminUser{}
	}
	r.users[u.Username] = *u
	return nil
}
