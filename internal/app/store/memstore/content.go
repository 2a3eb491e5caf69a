// internal/app/store/memstore/content.go
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/normalize"
	"github.com/ponsectors/ponsectors/internal/domain/models"
)

type insightsView Store

func (v *insightsView) GetAll(ctx context.Context) ([]models.Insight, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Insight, 0, len(s.insights))
	for _, in := range s.insights {
		out = append(out, copyInsight(in))
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] > s.seq[out[j].ID] })
	return out, nil
}

func (v *insightsView) GetByID(ctx context.Context, id string) (models.Insight, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	in, ok := s.insights[id]
	if !ok {
		return models.Insight{}, store.ErrNotFound
	}
	return copyInsight(in), nil
}

func (v *insightsView) Create(ctx context.Context, in models.Insight) (models.Insight, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID == "" {
		in.ID = newID()
	}
	in.TitleCI = normalize.Fold(in.Title)
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	s.insights[in.ID] = copyInsight(in)
	s.bump(in.ID)
	return copyInsight(in), nil
}

func (v *insightsView) Update(ctx context.Context, in models.Insight) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.insights[in.ID]
	if !ok {
		return store.ErrNotFound
	}
	in.AuthorID = cur.AuthorID
	in.CreatedAt = cur.CreatedAt
	in.Status = cur.Status
	in.TitleCI = normalize.Fold(in.Title)
	s.insights[in.ID] = copyInsight(in)
	return nil
}

func (v *insightsView) Delete(ctx context.Context, id string) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.insights[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.insights, id)
	delete(s.seq, id)
	return nil
}

func (v *insightsView) TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.insights[id]
	if !ok {
		return false, store.ErrNotFound
	}
	if cur.Status != from {
		return false, nil
	}
	cur.Status = to
	s.insights[id] = copyInsight(cur)
	return true, nil
}

type fundingView Store

func (v *fundingView) GetAll(ctx context.Context) ([]models.FundingOpportunity, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FundingOpportunity, 0, len(s.funding))
	for _, f := range s.funding {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] > s.seq[out[j].ID] })
	return out, nil
}

func (v *fundingView) GetByID(ctx context.Context, id string) (models.FundingOpportunity, error) {
	s := (*Store)(v)
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.funding[id]
	if !ok {
		return models.FundingOpportunity{}, store.ErrNotFound
	}
	return f, nil
}

func (v *fundingView) Create(ctx context.Context, f models.FundingOpportunity) (models.FundingOpportunity, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == "" {
		f.ID = newID()
	}
	f.TitleCI = normalize.Fold(f.Title)
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	s.funding[f.ID] = f
	s.bump(f.ID)
	return f, nil
}

func (v *fundingView) Update(ctx context.Context, f models.FundingOpportunity) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.funding[f.ID]
	if !ok {
		return store.ErrNotFound
	}
	f.OwnerID = cur.OwnerID
	f.CreatedAt = cur.CreatedAt
	f.Status = cur.Status
	f.TitleCI = normalize.Fold(f.Title)
	s.funding[f.ID] = f
	return nil
}

func (v *fundingView) Delete(ctx context.Context, id string) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.funding[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.funding, id)
	delete(s.seq, id)
	return nil
}

func (v *fundingView) TransitionStatus(ctx context.Context, id string, from, to models.ContentStatus) (bool, error) {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.funding[id]
	if !ok {
		return false, store.ErrNotFound
	}
	if cur.Status != from {
		return false, nil
	}
	cur.Status = to
	s.funding[id] = cur
	return true, nil
}
