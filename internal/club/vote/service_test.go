// Copyright (c) 2026 Novella. All rights reserved.

package vote_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/club/portal"
	"github.com/novellaclub/novella/internal/club/suggestion"
	"github.com/novellaclub/novella/internal/club/vote"
	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/dberr"
)

// fakeRepository mirrors the storage contract: one ballot per (user,
// suggestion) pair and an atomic counter bump, safe for concurrent casts.
type fakeRepository struct {
	mu     sync.Mutex
	pairs  map[string]bool
	counts map[string]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		pairs:  make(map[string]bool),
		counts: make(map[string]int),
	}
}

func (f *fakeRepository) CastVote(_ context.Context, v *vote.Vote) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := v.UserID + "/" + v.SuggestionID
	if f.pairs[key] {
		return 0, vote.ErrAlreadyVoted
	}
	f.pairs[key] = true
	f.counts[v.SuggestionID]++
	return f.counts[v.SuggestionID], nil
}

type fakeSuggestions struct {
	byID map[string]*suggestion.Suggestion
}

func (f *fakeSuggestions) GetSuggestion(_ context.Context, id string) (*suggestion.Suggestion, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return s, nil
}

type fakeGate struct {
	portals map[period.Period]*portal.PortalStatus
}

func (f *fakeGate) GetPortalForPeriod(_ context.Context, month, year int, category period.Category) (*portal.PortalStatus, error) {
	p, ok := f.portals[period.Normalize(month, year, category)]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return p, nil
}

func fixture(votingOpen bool) (*fakeRepository, *vote.Service) {
	target := &suggestion.Suggestion{
		ID: "s-1", UserID: "author-1", Title: "Middlemarch",
		Month: 5, Year: 2025, Category: period.CategoryFiction,
	}
	repo := newFakeRepository()
	gate := &fakeGate{portals: map[period.Period]*portal.PortalStatus{
		{Month: 5, Year: 2025}: {Month: 5, Year: 2025, Category: period.CategoryFiction, VotingOpen: votingOpen},
	}}
	service := vote.NewService(repo, &fakeSuggestions{byID: map[string]*suggestion.Suggestion{"s-1": target}}, gate, slog.New(slog.DiscardHandler))
	return repo, service
}

/*
TestCast records a ballot and returns the incremented count.
*/
func TestCast(t *testing.T) {
	_, service := fixture(true)

	count, err := service.Cast(context.Background(), "user-1", "s-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = service.Cast(context.Background(), "user-2", "s-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

/*
TestCast_Duplicate rejects a member's second ballot for the same suggestion.
*/
func TestCast_Duplicate(t *testing.T) {
	_, service := fixture(true)
	ctx := context.Background()

	_, err := service.Cast(ctx, "user-1", "s-1")
	require.NoError(t, err)

	_, err = service.Cast(ctx, "user-1", "s-1")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, vote.CodeAlreadyVoted))
}

/*
TestCast_VotingClosed rejects ballots while the voting gate is shut, including
when the period has no portal row at all.
*/
func TestCast_VotingClosed(t *testing.T) {
	t.Run("gate_shut", func(t *testing.T) {
		_, service := fixture(false)

		_, err := service.Cast(context.Background(), "user-1", "s-1")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, vote.CodeVotingClosed))
	})

	t.Run("no_portal_row", func(t *testing.T) {
		target := &suggestion.Suggestion{ID: "s-1", Month: 5, Year: 2025, Category: period.CategoryFiction}
		service := vote.NewService(newFakeRepository(),
			&fakeSuggestions{byID: map[string]*suggestion.Suggestion{"s-1": target}},
			&fakeGate{portals: map[period.Period]*portal.PortalStatus{}},
			slog.New(slog.DiscardHandler))

		_, err := service.Cast(context.Background(), "user-1", "s-1")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, vote.CodeVotingClosed))
	})
}

/*
TestCast_UnknownSuggestion returns NOT_FOUND for a ballot against a
suggestion that does not exist.
*/
func TestCast_UnknownSuggestion(t *testing.T) {
	_, service := fixture(true)

	_, err := service.Cast(context.Background(), "user-1", "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCast_ConcurrentSamePair fans out many casts of the same (user,
suggestion) pair; exactly one may land and the counter must read 1.
*/
func TestCast_ConcurrentSamePair(t *testing.T) {
	repo, service := fixture(true)

	const attempts = 25
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Cast(context.Background(), "user-1", "s-1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperr.IsCode(err, vote.CodeAlreadyVoted):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)
	assert.Equal(t, 1, repo.counts["s-1"])
}

/*
TestCast_ConcurrentDistinctMembers fans out casts from distinct members; all
must land and the counter must equal the member count.
*/
func TestCast_ConcurrentDistinctMembers(t *testing.T) {
	repo, service := fixture(true)

	const members = 25
	var wg sync.WaitGroup
	for i := 0; i < members; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := service.Cast(context.Background(), fmt.Sprintf("user-%d", n), "s-1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, members, repo.counts["s-1"])
}
