package hackathon

import (
	"context"
	"fmt"
	"sync"
)

type RepositoryStub struct {
	mu         sync.Mutex
	hackathons []Hackathon
	nextId     int
	Err        error
}

func NewRepositoryStub(hackathons ...Hackathon) *RepositoryStub {
	stub := &RepositoryStub{nextId: 1}
	for _, h := range hackathons {
		if h.Id == "" {
			h.Id = fmt.Sprintf("hackathon-%d", stub.nextId)
			stub.nextId++
		}
		stub.hackathons = append(stub.hackathons, h)
	}
	SortByStartTime(stub.hackathons)
	return stub
}

func (r *RepositoryStub) Add(ctx context.Context, hackathon Hackathon) (Hackathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return Hackathon{}, r.Err
	}
	hackathon.Id = fmt.Sprintf("hackathon-%d", r.nextId)
	r.nextId++
	r.hackathons = append(r.hackathons, hackathon)
	SortByStartTime(r.hackathons)
	return hackathon, nil
}

func (r *RepositoryStub) List(ctx context.Context) ([]Hackathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	result := make([]Hackathon, len(r.hackathons))
	copy(result, r.hackathons)
	return result, nil
}
