// Package presenter renders the bike-sharing networks list as a Bubble Tea
// model. It reads through a DataSource, so the same model serves a live
// fetcher or a fixed mock value.
package presenter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/citybike/internal/adapters/in/cli/ui/components"
	"github.com/bnema/citybike/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/citybike/internal/boundaries/out"
	"github.com/bnema/citybike/internal/domain"
)

// defaultVisibleRows is used until the terminal reports its size.
const defaultVisibleRows = 20

// chromeLines is the number of lines taken by the header and help footer.
const chromeLines = 6

// State is the loading state of a Model.
type State int

const (
	// StateUnloaded is the initial state, before the model first appears.
	StateUnloaded State = iota
	// StateFetchTriggered means the one fetch of this model has been issued.
	StateFetchTriggered
	// StateLoaded means the data source returned a value after the fetch.
	StateLoaded
	// StateUnloadedPreview is terminal: network calls are disabled.
	StateUnloadedPreview
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateFetchTriggered:
		return "fetch_triggered"
	case StateLoaded:
		return "loaded"
	case StateUnloadedPreview:
		return "unloaded_preview"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AppearedMsg tells the model it is on screen. Init emits it once.
type AppearedMsg struct{}

// ApplyMsg carries a fetch completion into the update loop, so the published
// value changes on the goroutine that renders it.
type ApplyMsg struct {
	Apply func()
}

// SelectFunc is called when a row is chosen.
type SelectFunc func(domain.Network) tea.Cmd

// changes counts will-change notifications. It is shared by every copy of the
// model and only touched from the update loop.
type changes struct {
	pending int
}

// Model is the networks list.
type Model struct {
	source          out.DataSource[domain.Networks]
	fetcher         out.Fetcher[domain.Networks]
	notifier        out.ChangeNotifier[domain.Networks]
	url             string
	runNetworkCalls bool
	onSelect        SelectFunc
	title           string

	state       State
	appeared    bool
	networks    []domain.Network
	cursor      int
	offset      int
	width       int
	height      int
	spinner     components.SpinnerModel
	changes     *changes
	unsubscribe func()
}

// Option configures a Model.
type Option func(*Model)

// WithFetcher binds the fetcher triggered on first appearance.
func WithFetcher(f out.Fetcher[domain.Networks]) Option {
	return func(m *Model) {
		m.fetcher = f
	}
}

// WithNotifier re-renders the model whenever n is about to change.
func WithNotifier(n out.ChangeNotifier[domain.Networks]) Option {
	return func(m *Model) {
		m.notifier = n
	}
}

// WithURL overrides the endpoint passed to the fetcher.
func WithURL(url string) Option {
	return func(m *Model) {
		m.url = url
	}
}

// WithRunNetworkCalls enables or disables the fetch on first appearance.
func WithRunNetworkCalls(run bool) Option {
	return func(m *Model) {
		m.runNetworkCalls = run
	}
}

// WithSelectHandler sets the action run when a row is chosen.
func WithSelectHandler(fn SelectFunc) Option {
	return func(m *Model) {
		m.onSelect = fn
	}
}

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// New creates a list model reading from source.
func New(source out.DataSource[domain.Networks], opts ...Option) Model {
	m := Model{
		source:          source,
		url:             domain.NetworksURL,
		runNetworkCalls: true,
		title:           "Bike-sharing networks",
		state:           StateUnloaded,
		spinner:         components.NewSpinner(components.WithMessage("Loading networks...")),
		changes:         &changes{},
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.notifier != nil {
		c := m.changes
		m.unsubscribe = m.notifier.Subscribe(func(domain.Networks, bool) {
			c.pending++
		})
	}

	m.refresh()
	return m
}

// Close detaches the model from its notifier.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model. The spinner starts with the fetch, not here.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return AppearedMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppearedMsg:
		return m, m.appear()

	case ApplyMsg:
		if msg.Apply != nil {
			msg.Apply()
		}
		if m.changes.pending > 0 {
			m.changes.pending = 0
			m.refresh()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// appear runs the first-appearance transition and starts the spinner when a
// fetch is in flight. Later calls do nothing.
func (m *Model) appear() tea.Cmd {
	if m.appeared {
		return nil
	}
	m.appeared = true

	switch {
	case !m.runNetworkCalls:
		m.state = StateUnloadedPreview
	case m.fetcher != nil:
		m.fetcher.Fetch(m.url, domain.SampleNetworks())
		m.state = StateFetchTriggered
	}

	m.refresh()
	if m.loading() {
		return m.spinner.Tick()
	}
	return nil
}

// refresh re-reads the data source.
func (m *Model) refresh() {
	value, ok := m.source.Get()
	if ok {
		m.networks = value.Networks
	} else {
		m.networks = nil
	}

	if ok && m.state == StateFetchTriggered {
		m.state = StateLoaded
	}

	m.clamp()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "pgup":
		m.cursor -= m.visibleRows()
	case "pgdown":
		m.cursor += m.visibleRows()
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.networks) - 1
	case "enter":
		if network, ok := m.Selected(); ok && m.onSelect != nil {
			return m, m.onSelect(network)
		}
		return m, nil
	}

	m.clamp()
	return m, nil
}

// clamp keeps the cursor on a row and the cursor inside the visible window.
func (m *Model) clamp() {
	if m.cursor >= len(m.networks) {
		m.cursor = len(m.networks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if maxOffset := max(len(m.networks)-rows, 0); m.offset > maxOffset {
		m.offset = maxOffset
	}
}

func (m Model) visibleRows() int {
	if m.height == 0 {
		return defaultVisibleRows
	}
	return max(m.height-chromeLines, 1)
}

func (m Model) loading() bool {
	return m.state == StateFetchTriggered
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Theme.Title.Render(styles.IconBike + " " + m.title))
	b.WriteString("  ")
	b.WriteString(styles.Theme.Subtitle.Render(fmt.Sprintf("%d networks", len(m.networks))))
	b.WriteString("\n")

	if m.state == StateUnloadedPreview {
		b.WriteString(styles.RenderWarning("preview: network calls disabled"))
	}
	b.WriteString("\n\n")

	switch {
	case m.loading():
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	case len(m.networks) == 0:
		b.WriteString(styles.Theme.Muted.Render("No networks to show."))
		b.WriteString("\n")
	default:
		end := min(m.offset+m.visibleRows(), len(m.networks))
		for i := m.offset; i < end; i++ {
			name := m.networks[i].Name
			if m.width > 0 {
				name = components.Truncate(name, m.width-4)
			}
			b.WriteString(styles.RenderListItem(name, i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.RenderKeyHelp("↑/↓", "navigate") + "  " +
		styles.RenderKeyHelp("enter", "select") + "  " +
		styles.RenderKeyHelp("q", "quit"))

	return b.String()
}

// State returns the loading state.
func (m Model) State() State { return m.state }

// Networks returns the rows currently rendered.
func (m Model) Networks() []domain.Network { return m.networks }

// Cursor returns the index of the highlighted row.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the highlighted network.
func (m Model) Selected() (domain.Network, bool) {
	if m.cursor < 0 || m.cursor >= len(m.networks) {
		return domain.Network{}, false
	}
	return m.networks[m.cursor], true
}
