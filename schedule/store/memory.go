// Package store provides the in-memory Store implementation.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gonami-gennnmja/remit-planner-sub000/schedule"
)

// =============================================================================
// MEMORY STORE - Map-backed implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu              sync.RWMutex
	clients         map[string]schedule.Client
	workers         map[string]schedule.Worker
	schedules       map[string]schedule.Schedule
	scheduleWorkers map[string]schedule.ScheduleWorker
	periods         map[string]schedule.Period
}

func NewMemory() *Memory {
	return &Memory{
		clients:         make(map[string]schedule.Client),
		workers:         make(map[string]schedule.Worker),
		schedules:       make(map[string]schedule.Schedule),
		scheduleWorkers: make(map[string]schedule.ScheduleWorker),
		periods:         make(map[string]schedule.Period),
	}
}

// =============================================================================
// CLIENTS
// =============================================================================

func (m *Memory) SaveClient(_ context.Context, c schedule.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ID] = c
	return nil
}

func (m *Memory) Client(_ context.Context, id string) (schedule.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return schedule.Client{}, schedule.ErrNotFound
	}
	return c, nil
}

func (m *Memory) ListClients(_ context.Context) ([]schedule.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schedule.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return createdBefore(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (m *Memory) DeleteClient(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

// =============================================================================
// WORKERS
// =============================================================================

func (m *Memory) SaveWorker(_ context.Context, w schedule.Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers[w.ID] = w
	return nil
}

func (m *Memory) Worker(_ context.Context, id string) (schedule.Worker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.workers[id]
	if !ok {
		return schedule.Worker{}, schedule.ErrNotFound
	}
	return w, nil
}

func (m *Memory) ListWorkers(_ context.Context) ([]schedule.Worker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schedule.Worker, 0, len(m.workers))
	for _, w := range m.workers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return createdBefore(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (m *Memory) DeleteWorker(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workers[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(m.workers, id)
	return nil
}

// =============================================================================
// SCHEDULES
// =============================================================================

func (m *Memory) SaveSchedule(_ context.Context, s schedule.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[s.ID] = s
	return nil
}

func (m *Memory) Schedule(_ context.Context, id string) (schedule.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	return s, nil
}

func (m *Memory) ListSchedules(_ context.Context) ([]schedule.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schedule.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return createdBefore(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (m *Memory) ListSchedulesByClient(_ context.Context, clientID string) ([]schedule.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.Schedule
	for _, s := range m.schedules {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return createdBefore(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (m *Memory) DeleteSchedule(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(m.schedules, id)
	return nil
}

// =============================================================================
// SCHEDULE WORKERS
// =============================================================================

func (m *Memory) SaveScheduleWorker(_ context.Context, sw schedule.ScheduleWorker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleWorkers[sw.ID] = sw
	return nil
}

func (m *Memory) ScheduleWorker(_ context.Context, id string) (schedule.ScheduleWorker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sw, ok := m.scheduleWorkers[id]
	if !ok {
		return schedule.ScheduleWorker{}, schedule.ErrNotFound
	}
	return sw, nil
}

func (m *Memory) ListScheduleWorkers(_ context.Context, scheduleID string) ([]schedule.ScheduleWorker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.ScheduleWorker
	for _, sw := range m.scheduleWorkers {
		if sw.ScheduleID == scheduleID {
			out = append(out, sw)
		}
	}
	sort.Slice(out, func(i, j int) bool { return createdBefore(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (m *Memory) DeleteScheduleWorker(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scheduleWorkers[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(m.scheduleWorkers, id)
	return nil
}

// =============================================================================
// PERIODS
// =============================================================================

func (m *Memory) SavePeriod(_ context.Context, p schedule.Period) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.periods[p.ID] = p
	return nil
}

func (m *Memory) Period(_ context.Context, id string) (schedule.Period, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.periods[id]
	if !ok {
		return schedule.Period{}, schedule.ErrNotFound
	}
	return p, nil
}

func (m *Memory) ListPeriods(_ context.Context, scheduleWorkerID string) ([]schedule.Period, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.Period
	for _, p := range m.periods {
		if p.ScheduleWorkerID == scheduleWorkerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeletePeriod(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.periods[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(m.periods, id)
	return nil
}

func (m *Memory) DeletePeriods(_ context.Context, scheduleWorkerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.periods {
		if p.ScheduleWorkerID == scheduleWorkerID {
			delete(m.periods, id)
		}
	}
	return nil
}

// createdBefore orders records by creation time with the ID as a stable
// tie-break for records created in the same instant.
func createdBefore(a, b time.Time, aID, bID string) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return aID < bID
}
