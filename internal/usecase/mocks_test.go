package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/pulseboard/pulseboard/internal/ports"
)

type mockTracker struct {
	mock.Mock
}

func (m *mockTracker) SearchCreated(ctx context.Context, project string, dr domain.DateRange) ([]domain.Issue, error) {
	args := m.Called(ctx, project, dr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *mockTracker) SearchCompleted(ctx context.Context, project string, dr domain.DateRange) ([]domain.Issue, error) {
	args := m.Called(ctx, project, dr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *mockTracker) SearchWorkInProgress(ctx context.Context, project string) ([]domain.Issue, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *mockTracker) SearchBoard(ctx context.Context, project string) ([]domain.BoardTicket, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoardTicket), args.Error(1)
}

func (m *mockTracker) Myself(ctx context.Context) (*domain.TrackerUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackerUser), args.Error(1)
}

type mockMessenger struct {
	mock.Mock
}

func (m *mockMessenger) SearchDestinations(ctx context.Context, query string) ([]ports.Destination, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Destination), args.Error(1)
}

func (m *mockMessenger) PostMessage(ctx context.Context, channelID, text string) (*ports.PostReceipt, error) {
	args := m.Called(ctx, channelID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PostReceipt), args.Error(1)
}

type mockCompletion struct {
	mock.Mock
}

func (m *mockCompletion) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
