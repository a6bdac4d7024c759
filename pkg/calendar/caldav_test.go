package calendar

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/emersion/go-ical"
	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPut struct {
	path        string
	user        string
	password    string
	contentType string
	body        []byte
}

type davServer struct {
	mu     sync.Mutex
	puts   []capturedPut
	status int
}

func (s *davServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, _ := io.ReadAll(r.Body)
	user, password, _ := r.BasicAuth()
	s.mu.Lock()
	s.puts = append(s.puts, capturedPut{
		path:        r.URL.Path,
		user:        user,
		password:    password,
		contentType: r.Header.Get("Content-Type"),
		body:        body,
	})
	status := s.status
	s.mu.Unlock()
	w.WriteHeader(status)
}

func setupPublisher(t *testing.T, status int) (*Publisher, *davServer) {
	dav := &davServer{status: status}
	server := httptest.NewServer(dav)
	t.Cleanup(server.Close)

	publisher, err := NewPublisher(config.CalDAV{
		Endpoint: server.URL + "/",
		Username: "user",
		Password: "secret",
		Calendar: "/calendars/user/hackathons/",
	}, nil, &utils.MockClock{FixedNow: stamp})
	require.NoError(t, err)
	return publisher, dav
}

func TestPublish(t *testing.T) {
	publisher, dav := setupPublisher(t, http.StatusCreated)

	count, err := publisher.Publish(context.Background(), testHackathons())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, dav.puts, 2)
	assert.Equal(t, "/calendars/user/hackathons/hackathon-1.ics", dav.puts[0].path)
	assert.Equal(t, "/calendars/user/hackathons/hackathon-2.ics", dav.puts[1].path)
	assert.Equal(t, "user", dav.puts[0].user)
	assert.Equal(t, "secret", dav.puts[0].password)

	cal := decode(t, dav.puts[0].body)
	events := cal.Events()
	require.Len(t, events, 1)
	summary, _ := events[0].Props.Text(ical.PropSummary)
	assert.Equal(t, "HackMIT", summary)
}

func TestPublish_ServerError(t *testing.T) {
	publisher, _ := setupPublisher(t, http.StatusForbidden)

	count, err := publisher.Publish(context.Background(), testHackathons())

	assert.Error(t, err)
	assert.Equal(t, 0, count)
}

func TestNewPublisher_NotConfigured(t *testing.T) {
	_, err := NewPublisher(config.CalDAV{Endpoint: "https://dav.example.com/"}, nil, utils.SystemClock{})

	assert.ErrorIs(t, err, ErrCalDAVNotConfigured)
}
