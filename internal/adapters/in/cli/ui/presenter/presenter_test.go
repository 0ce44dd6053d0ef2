package presenter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/citybike/internal/adapters/out/datasource"
	"github.com/bnema/citybike/internal/adapters/out/httpfetch"
	"github.com/bnema/citybike/internal/domain"
	"github.com/bnema/citybike/pkg/observable"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(url string, defaultValue domain.Networks) {
	m.Called(url, defaultValue)
}

// liveValue is a holder and notifier backed by an observable value.
type liveValue struct {
	v observable.Value[domain.Networks]
}

func (l *liveValue) Value() (domain.Networks, bool) { return l.v.Current() }

func (l *liveValue) Subscribe(fn observable.WillChangeFunc[domain.Networks]) func() {
	return l.v.Subscribe(fn)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func manyNetworks(n int) domain.Networks {
	out := domain.Networks{Networks: make([]domain.Network, 0, n)}
	for i := range n {
		out.Networks = append(out.Networks, domain.Network{
			ID:   fmt.Sprintf("net-%02d", i),
			Href: fmt.Sprintf("/v2/networks/net-%02d", i),
			Name: fmt.Sprintf("Network %02d", i),
		})
	}
	return out
}

func TestModel_InitEmitsAppeared(t *testing.T) {
	m := New(datasource.NewMock(domain.SampleNetworks()))

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.IsType(t, AppearedMsg{}, cmd())
}

func TestModel_SpinnerStartsWithFetch(t *testing.T) {
	live := &liveValue{}
	fetcher := &mockFetcher{}
	fetcher.On("Fetch", domain.NetworksURL, domain.SampleNetworks()).Return()

	m := New(datasource.NewLive[domain.Networks](live),
		WithFetcher(fetcher),
		WithNotifier(live),
	)
	defer m.Close()

	// A tick delivered before the first appearance is dropped.
	m, cmd := update(t, m, spinner.TickMsg{})
	assert.Nil(t, cmd)

	m, cmd = update(t, m, AppearedMsg{})
	require.Equal(t, StateFetchTriggered, m.State())
	require.NotNil(t, cmd)

	tick, ok := cmd().(spinner.TickMsg)
	require.True(t, ok)

	// The animation keeps scheduling itself while loading.
	m, cmd = update(t, m, tick)
	require.NotNil(t, cmd)

	// A repeated appearance does not start a second chain.
	_, cmd = update(t, m, AppearedMsg{})
	assert.Nil(t, cmd)
}

func TestModel_NoSpinnerWithoutFetch(t *testing.T) {
	m := New(datasource.NewMock(domain.SampleNetworks()), WithRunNetworkCalls(false))

	m, cmd := update(t, m, AppearedMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, StateUnloadedPreview, m.State())
}

func TestModel_PreviewNeverFetches(t *testing.T) {
	fetcher := &mockFetcher{}
	m := New(datasource.NewMock(domain.SampleNetworks()),
		WithFetcher(fetcher),
		WithRunNetworkCalls(false),
	)
	assert.Equal(t, StateUnloaded, m.State())

	m, _ = update(t, m, AppearedMsg{})

	assert.Equal(t, StateUnloadedPreview, m.State())
	assert.Equal(t, domain.SampleNetworks().Networks, m.Networks())
	assert.Contains(t, m.View(), "Test")
	assert.Contains(t, m.View(), "preview")
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)

	m, _ = update(t, m, AppearedMsg{})
	assert.Equal(t, StateUnloadedPreview, m.State())
}

func TestModel_FetchesOnceOnFirstAppearance(t *testing.T) {
	live := &liveValue{}
	fetcher := &mockFetcher{}
	fetcher.On("Fetch", domain.NetworksURL, domain.SampleNetworks()).Return().Once()

	m := New(datasource.NewLive[domain.Networks](live),
		WithFetcher(fetcher),
		WithNotifier(live),
	)
	defer m.Close()

	assert.Empty(t, m.Networks())

	m, _ = update(t, m, AppearedMsg{})
	assert.Equal(t, StateFetchTriggered, m.State())
	assert.Contains(t, m.View(), "Loading networks")

	m, _ = update(t, m, AppearedMsg{})
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	fetcher.AssertExpectations(t)
}

func TestModel_CustomURL(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("Fetch", "http://localhost:9999/v2/networks", domain.SampleNetworks()).Return()

	m := New(datasource.NewLive[domain.Networks](&liveValue{}),
		WithFetcher(fetcher),
		WithURL("http://localhost:9999/v2/networks"),
	)
	_, _ = update(t, m, AppearedMsg{})

	fetcher.AssertExpectations(t)
}

func TestModel_RerendersOnWillChange(t *testing.T) {
	live := &liveValue{}
	fetcher := &mockFetcher{}
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return()

	m := New(datasource.NewLive[domain.Networks](live),
		WithFetcher(fetcher),
		WithNotifier(live),
	)
	defer m.Close()

	m, _ = update(t, m, AppearedMsg{})
	require.Equal(t, StateFetchTriggered, m.State())

	m, _ = update(t, m, ApplyMsg{Apply: func() { live.v.Set(manyNetworks(3)) }})

	assert.Equal(t, StateLoaded, m.State())
	assert.Len(t, m.Networks(), 3)
	assert.Contains(t, m.View(), "Network 02")
	assert.Contains(t, m.View(), "3 networks")
}

func TestModel_ApplyWithoutChangeKeepsRows(t *testing.T) {
	live := &liveValue{}
	m := New(datasource.NewLive[domain.Networks](live), WithNotifier(live))
	defer m.Close()

	// Mutating behind the model's back without a notification is not picked up.
	m, _ = update(t, m, ApplyMsg{Apply: func() {}})
	assert.Empty(t, m.Networks())
}

func TestModel_CloseUnsubscribes(t *testing.T) {
	live := &liveValue{}
	m := New(datasource.NewLive[domain.Networks](live), WithNotifier(live))

	m.Close()
	m, _ = update(t, m, ApplyMsg{Apply: func() { live.v.Set(domain.SampleNetworks()) }})

	// The value changed but the model no longer hears about it.
	assert.Empty(t, m.Networks())
}

func TestModel_EmptyState(t *testing.T) {
	m := New(datasource.NewMock(domain.Networks{Networks: []domain.Network{}}), WithRunNetworkCalls(false))
	m, _ = update(t, m, AppearedMsg{})

	assert.Contains(t, m.View(), "No networks to show.")
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestModel_Navigation(t *testing.T) {
	m := New(datasource.NewMock(manyNetworks(5)), WithRunNetworkCalls(false))

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	assert.Equal(t, 2, m.Cursor())

	m, _ = update(t, m, key("up"))
	assert.Equal(t, 1, m.Cursor())

	m, _ = update(t, m, key("end"))
	assert.Equal(t, 4, m.Cursor())

	m, _ = update(t, m, key("down"))
	assert.Equal(t, 4, m.Cursor(), "cursor stays on the last row")

	m, _ = update(t, m, key("home"))
	m, _ = update(t, m, key("k"))
	assert.Equal(t, 0, m.Cursor(), "cursor stays on the first row")
}

func TestModel_SelectIsNoopByDefault(t *testing.T) {
	m := New(datasource.NewMock(manyNetworks(2)), WithRunNetworkCalls(false))

	m, cmd := update(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_SelectHandler(t *testing.T) {
	var chosen domain.Network
	m := New(datasource.NewMock(manyNetworks(3)),
		WithRunNetworkCalls(false),
		WithSelectHandler(func(n domain.Network) tea.Cmd {
			chosen = n
			return nil
		}),
	)

	m, _ = update(t, m, key("down"))
	_, _ = update(t, m, key("enter"))

	assert.Equal(t, "net-01", chosen.ID)
}

func TestModel_Quit(t *testing.T) {
	m := New(datasource.NewMock(domain.SampleNetworks()), WithRunNetworkCalls(false))

	for _, k := range []string{"q", "esc"} {
		_, cmd := update(t, m, key(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_ScrollsWithinWindow(t *testing.T) {
	m := New(datasource.NewMock(manyNetworks(30)), WithRunNetworkCalls(false))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	for range 10 {
		m, _ = update(t, m, key("down"))
	}

	view := m.View()
	assert.Contains(t, view, "Network 10")
	assert.NotContains(t, view, "Network 00")
}

func TestModel_TruncatesLongNames(t *testing.T) {
	long := domain.Networks{Networks: []domain.Network{{ID: "x", Href: "x", Name: "A very long bike-sharing network name"}}}
	m := New(datasource.NewMock(long), WithRunNetworkCalls(false))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	view := m.View()
	assert.NotContains(t, view, "network name")
	assert.Contains(t, view, "...")
}

func TestModel_LiveFetcherEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"networks":[{"id":"velib","href":"/v2/networks/velib","name":"Velib"}]}`))
	}))
	defer srv.Close()

	queued := make(chan func(), 1)
	fetcher := httpfetch.New[domain.Networks](
		httpfetch.WithHTTPClient(srv.Client()),
		httpfetch.WithDispatcher(func(apply func()) { queued <- apply }),
	)
	defer func() { _ = fetcher.Close() }()

	m := New(datasource.NewLive[domain.Networks](fetcher),
		WithFetcher(fetcher),
		WithNotifier(fetcher),
		WithURL(srv.URL),
	)
	defer m.Close()

	m, _ = update(t, m, AppearedMsg{})
	require.Equal(t, StateFetchTriggered, m.State())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, fetcher.Wait(ctx))

	_, ok := fetcher.Value()
	require.False(t, ok, "value is published by the update loop, not the fetch goroutine")

	m, _ = update(t, m, ApplyMsg{Apply: <-queued})

	assert.Equal(t, StateLoaded, m.State())
	require.Len(t, m.Networks(), 1)
	assert.Equal(t, "Velib", m.Networks()[0].Name)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unloaded", StateUnloaded.String())
	assert.Equal(t, "fetch_triggered", StateFetchTriggered.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "unloaded_preview", StateUnloadedPreview.String())
}
