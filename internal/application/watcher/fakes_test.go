package watcher

import (
	"context"
	"sync"

	"github.com/alejandrodnm/polywatch/internal/domain"
)

type fakeActivity struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	err    error
	calls  int
}

func (f *fakeActivity) FetchActivity(_ context.Context, _ string, _ int) ([]domain.ActivityEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.ActivityEvent(nil), f.events...), nil
}

func (f *fakeActivity) set(events ...domain.ActivityEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = events
}

func (f *fakeActivity) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeProfiles struct {
	mu      sync.Mutex
	profile domain.Profile
	err     error
	calls   int
}

func (f *fakeProfiles) FetchProfile(_ context.Context, address string) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return domain.Profile{}, f.err
	}
	p := f.profile
	p.Address = address
	return p, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	return f.err
}

func (f *fakeNotifier) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

type fakeAlertLog struct {
	mu     sync.Mutex
	alerts []domain.Alert
}

func (f *fakeAlertLog) SaveAlert(_ context.Context, a domain.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
	return nil
}

func (f *fakeAlertLog) RecentAlerts(_ context.Context, limit int) ([]domain.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.alerts) {
		limit = len(f.alerts)
	}
	return append([]domain.Alert(nil), f.alerts[:limit]...), nil
}

func (f *fakeAlertLog) Close() error { return nil }
