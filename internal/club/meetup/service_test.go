// Copyright (c) 2026 Novella. All rights reserved.

package meetup_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellaclub/novella/internal/club/meetup"
	"github.com/novellaclub/novella/internal/platform/apperr"
	"github.com/novellaclub/novella/internal/platform/dberr"
)

type fakeRepository struct {
	meetups []*meetup.Meetup
}

func (f *fakeRepository) ListMeetups(_ context.Context, publishedOnly bool) ([]*meetup.Meetup, error) {
	var out []*meetup.Meetup
	for _, m := range f.meetups {
		if publishedOnly && !m.IsPublished {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EventDate.After(out[j].EventDate)
	})
	return out, nil
}

func (f *fakeRepository) GetMeetup(_ context.Context, id string) (*meetup.Meetup, error) {
	for _, m := range f.meetups {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateMeetup(_ context.Context, m *meetup.Meetup) error {
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	f.meetups = append(f.meetups, m)
	return nil
}

func (f *fakeRepository) UpdateMeetup(_ context.Context, m *meetup.Meetup) error {
	for i, existing := range f.meetups {
		if existing.ID == m.ID {
			m.UpdatedAt = time.Now()
			f.meetups[i] = m
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) SetPublished(ctx context.Context, id string, published bool) (*meetup.Meetup, error) {
	m, err := f.GetMeetup(ctx, id)
	if err != nil {
		return nil, err
	}
	m.IsPublished = published
	m.UpdatedAt = time.Now()
	return m, nil
}

func (f *fakeRepository) DeleteMeetup(_ context.Context, id string) error {
	for i, m := range f.meetups {
		if m.ID == id {
			f.meetups = append(f.meetups[:i], f.meetups[i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validCreateInput() meetup.CreateInput {
	return meetup.CreateInput{
		Title:     "May Fiction Night",
		VenueName: "The Reading Room",
		Address:   "14 Awolowo Road, Ikoyi",
		EventDate: time.Date(2025, 5, 24, 16, 0, 0, 0, time.UTC),
		Month:     5,
		Year:      2025,
	}
}

/*
TestCreateMeetup_Validation rejects payloads that fail field validation.
*/
func TestCreateMeetup_Validation(t *testing.T) {
	service := meetup.NewService(&fakeRepository{}, discardLogger())

	badURL := "not a url"
	tests := []struct {
		name   string
		mutate func(*meetup.CreateInput)
	}{
		{"missing_title", func(i *meetup.CreateInput) { i.Title = "" }},
		{"missing_venue", func(i *meetup.CreateInput) { i.VenueName = "" }},
		{"missing_address", func(i *meetup.CreateInput) { i.Address = "" }},
		{"missing_event_date", func(i *meetup.CreateInput) { i.EventDate = time.Time{} }},
		{"bad_month", func(i *meetup.CreateInput) { i.Month = 0 }},
		{"bad_maps_url", func(i *meetup.CreateInput) { i.GoogleMapsURL = &badURL }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)

			_, err := service.CreateMeetup(context.Background(), input)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
		})
	}
}

/*
TestCreateMeetup_Defaults fills the city and leaves a new event unpublished
unless asked otherwise.
*/
func TestCreateMeetup_Defaults(t *testing.T) {
	service := meetup.NewService(&fakeRepository{}, discardLogger())

	created, err := service.CreateMeetup(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "Lagos", created.City)
	assert.False(t, created.IsPublished)
}

/*
TestListMeetups_Visibility hides drafts from members while admins see the
whole schedule, newest event first.
*/
func TestListMeetups_Visibility(t *testing.T) {
	repo := &fakeRepository{}
	service := meetup.NewService(repo, discardLogger())
	ctx := context.Background()

	published, err := service.CreateMeetup(ctx, validCreateInput())
	require.NoError(t, err)
	_, err = service.SetPublished(ctx, published.ID, true)
	require.NoError(t, err)

	draftInput := validCreateInput()
	draftInput.Title = "June Draft"
	draftInput.EventDate = time.Date(2025, 6, 28, 16, 0, 0, 0, time.UTC)
	draft, err := service.CreateMeetup(ctx, draftInput)
	require.NoError(t, err)

	memberView, err := service.ListMeetups(ctx, false)
	require.NoError(t, err)
	require.Len(t, memberView, 1)
	assert.Equal(t, published.ID, memberView[0].ID)

	adminView, err := service.ListMeetups(ctx, true)
	require.NoError(t, err)
	require.Len(t, adminView, 2)
	assert.Equal(t, draft.ID, adminView[0].ID)
}

/*
TestSetPublished flips member visibility both ways.
*/
func TestSetPublished(t *testing.T) {
	repo := &fakeRepository{}
	service := meetup.NewService(repo, discardLogger())
	ctx := context.Background()

	created, err := service.CreateMeetup(ctx, validCreateInput())
	require.NoError(t, err)

	updated, err := service.SetPublished(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)

	updated, err = service.SetPublished(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsPublished)
}

/*
TestUpdateMeetup replaces the content fields without touching the published
flag.
*/
func TestUpdateMeetup(t *testing.T) {
	repo := &fakeRepository{}
	service := meetup.NewService(repo, discardLogger())
	ctx := context.Background()

	created, err := service.CreateMeetup(ctx, validCreateInput())
	require.NoError(t, err)
	_, err = service.SetPublished(ctx, created.ID, true)
	require.NoError(t, err)

	input := validCreateInput()
	input.VenueName = "Jazzhole"
	input.City = "Ikeja"
	updated, err := service.UpdateMeetup(ctx, created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "Jazzhole", updated.VenueName)
	assert.Equal(t, "Ikeja", updated.City)
	assert.True(t, updated.IsPublished)
}

/*
TestUpdateMeetup_Unknown returns NOT_FOUND for an absent event.
*/
func TestUpdateMeetup_Unknown(t *testing.T) {
	service := meetup.NewService(&fakeRepository{}, discardLogger())

	_, err := service.UpdateMeetup(context.Background(), "missing", validCreateInput())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestDeleteMeetup_Unknown returns NOT_FOUND for an absent event.
*/
func TestDeleteMeetup_Unknown(t *testing.T) {
	service := meetup.NewService(&fakeRepository{}, discardLogger())

	err := service.DeleteMeetup(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
