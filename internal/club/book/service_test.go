// Copyright (c) 2026 Novella. All rights reserved.

package book_test

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellaclub/novella/internal/club/book"
	"github.com/novellaclub/novella/internal/club/period"
	"github.com/novellaclub/novella/internal/club/portal"
	"github.com/novellaclub/novella/internal/club/suggestion"
	"github.com/novellaclub/novella/internal/club/vote"
	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/dberr"
)

type fakeRepository struct {
	books []*book.Book
}

func (f *fakeRepository) ListBooks(_ context.Context, filter book.Filter, limit, offset int) ([]*book.Book, int, error) {
	var matched []*book.Book
	for _, b := range f.books {
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Selected != nil && b.IsSelected != *filter.Selected {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Query)) {
			continue
		}
		matched = append(matched, b)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeRepository) GetBook(_ context.Context, id string) (*book.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) GetBookBySlug(_ context.Context, slug string) (*book.Book, error) {
	for _, b := range f.books {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateBook(_ context.Context, b *book.Book) error {
	for _, existing := range f.books {
		if existing.Slug == b.Slug {
			return apperr.Conflict("A book with this slug already exists")
		}
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.books = append(f.books, b)
	return nil
}

func (f *fakeRepository) UpdateBook(_ context.Context, b *book.Book) error {
	for i, existing := range f.books {
		if existing.ID == b.ID {
			b.UpdatedAt = time.Now()
			f.books[i] = b
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) DeleteBook(_ context.Context, id string) error {
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validCreateInput() book.CreateInput {
	return book.CreateInput{
		Title:    "The Remains of the Day",
		Author:   "Kazuo Ishiguro",
		Synopsis: strings.Repeat("A butler looks back. ", 5),
		Category: period.CategoryFiction,
		Month:    5,
		Year:     2025,
	}
}

/*
TestCreateBook_Validation rejects payloads that fail field validation.
*/
func TestCreateBook_Validation(t *testing.T) {
	service := book.NewService(&fakeRepository{}, discardLogger())

	tests := []struct {
		name   string
		mutate func(*book.CreateInput)
	}{
		{"missing_title", func(i *book.CreateInput) { i.Title = "" }},
		{"missing_author", func(i *book.CreateInput) { i.Author = "" }},
		{"short_synopsis", func(i *book.CreateInput) { i.Synopsis = "too short" }},
		{"bad_category", func(i *book.CreateInput) { i.Category = "poetry" }},
		{"bad_month", func(i *book.CreateInput) { i.Month = 13 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)

			_, err := service.CreateBook(context.Background(), input)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
		})
	}
}

/*
TestCreateBook_SlugCollision retries a colliding slug with the book's short
ID appended instead of failing the request.
*/
func TestCreateBook_SlugCollision(t *testing.T) {
	service := book.NewService(&fakeRepository{}, discardLogger())
	ctx := context.Background()

	first, err := service.CreateBook(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "the-remains-of-the-day", first.Slug)

	second, err := service.CreateBook(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "the-remains-of-the-day-"+second.ID[:8], second.Slug)
}

/*
TestCreateBook_NormalizesNonFiction stores an even-month non-fiction entry
under the pair's odd start month.
*/
func TestCreateBook_NormalizesNonFiction(t *testing.T) {
	service := book.NewService(&fakeRepository{}, discardLogger())

	input := validCreateInput()
	input.Category = period.CategoryNonFiction
	input.Month = 6

	created, err := service.CreateBook(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 5, created.Month)
}

/*
TestPromoteSuggestion copies a suggestion into the catalog as the period's
selected read.
*/
func TestPromoteSuggestion(t *testing.T) {
	repo := &fakeRepository{}
	service := book.NewService(repo, discardLogger())

	image := "https://covers.novella.club/piranesi.jpg"
	bookID, err := service.PromoteSuggestion(context.Background(), &suggestion.Suggestion{
		ID:       "s-1",
		Title:    "Piranesi",
		Author:   "Susanna Clarke",
		Synopsis: strings.Repeat("The house is kind. ", 5),
		ImageURL: &image,
		Category: period.CategoryFiction,
		Month:    5,
		Year:     2025,
	})
	require.NoError(t, err)

	promoted, err := repo.GetBook(context.Background(), bookID)
	require.NoError(t, err)

	assert.Equal(t, "piranesi", promoted.Slug)
	assert.Equal(t, "Susanna Clarke", promoted.Author)
	assert.Equal(t, &image, promoted.ImageURL)
	assert.True(t, promoted.IsSelected)
	assert.Equal(t, 5, promoted.Month)
	assert.Equal(t, 2025, promoted.Year)
}

/*
TestUpdateBook edits the mutable fields and leaves the slug fixed.
*/
func TestUpdateBook(t *testing.T) {
	service := book.NewService(&fakeRepository{}, discardLogger())
	ctx := context.Background()

	created, err := service.CreateBook(ctx, validCreateInput())
	require.NoError(t, err)

	updated, err := service.UpdateBook(ctx, created.ID, book.UpdateInput{
		Title:    "The Remains of the Day (Anniversary Edition)",
		Author:   "Kazuo Ishiguro",
		Synopsis: strings.Repeat("A butler looks back once more. ", 5),
	})
	require.NoError(t, err)

	assert.Equal(t, "The Remains of the Day (Anniversary Edition)", updated.Title)
	assert.Equal(t, created.Slug, updated.Slug)
}

/*
TestDeleteBook_Unknown returns NOT_FOUND for an absent catalog entry.
*/
func TestDeleteBook_Unknown(t *testing.T) {
	service := book.NewService(&fakeRepository{}, discardLogger())

	err := service.DeleteBook(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// ── Monthly cycle ─────────────────────────────────────────────────────────

type portalKey struct {
	p        period.Period
	category period.Category
}

type fakePortalRepository struct {
	byID map[string]*portal.PortalStatus
}

func newFakePortalRepository() *fakePortalRepository {
	return &fakePortalRepository{byID: make(map[string]*portal.PortalStatus)}
}

func (f *fakePortalRepository) byPeriod(key portalKey) *portal.PortalStatus {
	for _, status := range f.byID {
		if status.Month == key.p.Month && status.Year == key.p.Year && status.Category == key.category {
			return status
		}
	}
	return nil
}

func (f *fakePortalRepository) ListPortals(_ context.Context) ([]*portal.PortalStatus, error) {
	var out []*portal.PortalStatus
	for _, status := range f.byID {
		out = append(out, status)
	}
	return out, nil
}

func (f *fakePortalRepository) GetPortal(_ context.Context, id string) (*portal.PortalStatus, error) {
	status, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return status, nil
}

func (f *fakePortalRepository) GetPortalForPeriod(_ context.Context, p period.Period, category period.Category) (*portal.PortalStatus, error) {
	if status := f.byPeriod(portalKey{p, category}); status != nil {
		return status, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakePortalRepository) CreatePortal(_ context.Context, status *portal.PortalStatus) error {
	if f.byPeriod(portalKey{period.Period{Month: status.Month, Year: status.Year}, status.Category}) != nil {
		return portal.ErrPortalExists
	}
	f.byID[status.ID] = status
	return nil
}

func (f *fakePortalRepository) SetNominationOpen(_ context.Context, id string, open bool) (*portal.PortalStatus, error) {
	status, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	status.NominationOpen = open
	if open {
		status.VotingOpen = false
	}
	return status, nil
}

func (f *fakePortalRepository) SetVotingOpen(_ context.Context, id string, open bool) (*portal.PortalStatus, error) {
	status, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	status.VotingOpen = open
	if open {
		status.NominationOpen = false
	}
	return status, nil
}

func (f *fakePortalRepository) ClosePortalForPeriod(_ context.Context, p period.Period, category period.Category) error {
	status := f.byPeriod(portalKey{p, category})
	if status == nil {
		return dberr.ErrNotFound
	}
	status.NominationOpen = false
	status.VotingOpen = false
	return nil
}

type fakeSuggestionRepository struct {
	suggestions []*suggestion.Suggestion
}

func (f *fakeSuggestionRepository) ListForPeriod(_ context.Context, p period.Period, category period.Category) ([]*suggestion.Suggestion, error) {
	var out []*suggestion.Suggestion
	for _, s := range f.suggestions {
		if s.Month == p.Month && s.Year == p.Year && s.Category == category {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VoteCount > out[j].VoteCount
	})
	return out, nil
}

func (f *fakeSuggestionRepository) GetSuggestion(_ context.Context, id string) (*suggestion.Suggestion, error) {
	for _, s := range f.suggestions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeSuggestionRepository) CountForUser(_ context.Context, userID string, p period.Period, category period.Category) (int, error) {
	count := 0
	for _, s := range f.suggestions {
		if s.UserID == userID && s.Month == p.Month && s.Year == p.Year && s.Category == category {
			count++
		}
	}
	return count, nil
}

func (f *fakeSuggestionRepository) CreateSuggestion(_ context.Context, s *suggestion.Suggestion) error {
	s.CreatedAt = time.Now()
	f.suggestions = append(f.suggestions, s)
	return nil
}

func (f *fakeSuggestionRepository) DeleteSuggestion(_ context.Context, id string) error {
	for i, s := range f.suggestions {
		if s.ID == id {
			f.suggestions = append(f.suggestions[:i], f.suggestions[i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

// fakeVoteRepository bumps the counter on the shared suggestion fake so the
// leaderboard reflects cast ballots.
type fakeVoteRepository struct {
	suggestions *fakeSuggestionRepository
	pairs       map[string]bool
}

func (f *fakeVoteRepository) CastVote(ctx context.Context, v *vote.Vote) (int, error) {
	key := v.UserID + "/" + v.SuggestionID
	if f.pairs[key] {
		return 0, vote.ErrAlreadyVoted
	}
	target, err := f.suggestions.GetSuggestion(ctx, v.SuggestionID)
	if err != nil {
		return 0, err
	}
	f.pairs[key] = true
	target.VoteCount++
	return target.VoteCount, nil
}

/*
TestMonthlyCycle walks one fiction period end to end: portal creation,
nominations, the voting switch, ballots, and winner selection.
*/
func TestMonthlyCycle(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	portalRepo := newFakePortalRepository()
	suggestionRepo := &fakeSuggestionRepository{}
	bookRepo := &fakeRepository{}

	portalService := portal.NewService(portalRepo, logger)
	bookService := book.NewService(bookRepo, logger)
	suggestionService := suggestion.NewService(suggestionRepo, portalService, portalService, bookService, logger)
	voteService := vote.NewService(
		&fakeVoteRepository{suggestions: suggestionRepo, pairs: make(map[string]bool)},
		suggestionService, portalService, logger,
	)

	// The admin opens May 2025 for fiction nominations.
	status, err := portalService.CreatePortal(ctx, 5, 2025, period.CategoryFiction)
	require.NoError(t, err)
	status, err = portalService.SetNominationOpen(ctx, status.ID, true)
	require.NoError(t, err)
	require.True(t, status.NominationOpen)

	// Voting is still shut, so ballots bounce.
	synopsis := strings.Repeat("A story worth reading together. ", 3)
	first, err := suggestionService.Submit(ctx, "alice", suggestion.SubmitInput{
		Title: "Piranesi", Author: "Susanna Clarke", Synopsis: synopsis,
		Category: period.CategoryFiction, Month: 5, Year: 2025,
	})
	require.NoError(t, err)

	second, err := suggestionService.Submit(ctx, "bob", suggestion.SubmitInput{
		Title: "The Dispossessed", Author: "Ursula K. Le Guin", Synopsis: synopsis,
		Category: period.CategoryFiction, Month: 5, Year: 2025,
	})
	require.NoError(t, err)

	_, err = voteService.Cast(ctx, "carol", first.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, vote.CodeVotingClosed))

	// The admin flips to voting; the nomination gate closes with it.
	status, err = portalService.SetVotingOpen(ctx, status.ID, true)
	require.NoError(t, err)
	require.True(t, status.VotingOpen)
	require.False(t, status.NominationOpen)

	_, err = suggestionService.Submit(ctx, "dave", suggestion.SubmitInput{
		Title: "Too Late", Author: "Anyone", Synopsis: synopsis,
		Category: period.CategoryFiction, Month: 5, Year: 2025,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, suggestion.CodeNominationClosed))

	// Three members back Piranesi, one backs The Dispossessed.
	for _, member := range []string{"carol", "dave", "erin"} {
		_, err := voteService.Cast(ctx, member, first.ID)
		require.NoError(t, err)
	}
	_, err = voteService.Cast(ctx, "frank", second.ID)
	require.NoError(t, err)

	board, err := suggestionService.Leaderboard(ctx, 5, 2025, period.CategoryFiction)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, first.ID, board[0].ID)
	assert.Equal(t, 3, board[0].VoteCount)
	assert.Equal(t, 1, board[1].VoteCount)

	// The admin selects the winner: it lands in the catalog and the portal
	// closes entirely.
	bookID, err := suggestionService.SelectWinner(ctx, first.ID)
	require.NoError(t, err)

	selected, err := bookService.GetBookBySlug(ctx, "piranesi")
	require.NoError(t, err)
	assert.Equal(t, bookID, selected.ID)
	assert.True(t, selected.IsSelected)
	assert.Equal(t, 5, selected.Month)
	assert.Equal(t, 2025, selected.Year)

	closed, err := portalService.GetPortal(ctx, status.ID)
	require.NoError(t, err)
	assert.False(t, closed.NominationOpen)
	assert.False(t, closed.VotingOpen)

	// With the portal closed, late ballots bounce again.
	_, err = voteService.Cast(ctx, "grace", second.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, vote.CodeVotingClosed))
}
