// Copyright (c) 2026 Novella. All rights reserved.

package meetup

import "context"

type Repository interface {
	ListMeetups(context context.Context, publishedOnly bool) ([]*Meetup, error)
	GetMeetup(context context.Context, id string) (*Meetup, error)
	CreateMeetup(context context.Context, m *Meetup) error
	UpdateMeetup(context context.Context, m *Meetup) error
	SetPublished(context context.Context, id string, published bool) (*Meetup, error)
	DeleteMeetup(context context.Context, id string) error
}
