package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/engine"
	"github.com/vovakirdan/arcade-hub/internal/hub"
	"github.com/vovakirdan/arcade-hub/internal/platform/host"
	"github.com/vovakirdan/arcade-hub/internal/registry"
)

// statusRows is the height of the bar under the game area.
const statusRows = 1

// Options configures a Model.
type Options struct {
	Scores hub.ScoreService
	Gate   hub.SessionGate
	Source config.Source
	Hub    config.HubConfig
	Logger *log.Logger

	// Width and Height are the initial terminal size.
	Width  int
	Height int
	// Seed for game randomness. Zero seeds from the clock.
	Seed int64
	// Autostart opens this title right after boot when the player is
	// already signed in.
	Autostart registry.Key
	// Factory overrides the registry lookup.
	Factory hub.FactoryFunc
	// Now overrides the clock used for key timing.
	Now func() time.Time
}

// changeMsg reports that a background hub step finished.
type changeMsg struct{}

// selectMsg asks the model to start a title.
type selectMsg struct{ key registry.Key }

// Model is the Bubble Tea model for one arcade session: sign-in, menu,
// game and leaderboard screens over a single engine runtime.
type Model struct {
	app     *hub.App
	host    *host.Host
	runtime *engine.Runtime
	logger  *log.Logger
	opts    Options

	keys    KeyMap
	help    help.Model
	name    textinput.Model
	games   []registry.GameInfo
	cursor  int
	scores  *ScoreboardModel
	changes chan struct{}
	faultCh chan *engine.UnitFault

	width    int
	height   int
	ticking  bool
	status   string
	quitting bool
}

// NewModel builds a session: host, runtime and hub. The hub is booted, so
// the first screen is already known.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	if opts.Hub.TickRate <= 0 {
		opts.Hub = config.DefaultHubConfig()
	}

	m := Model{
		logger:  opts.Logger.WithPrefix("tui"),
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		games:   registry.List(),
		changes: make(chan struct{}, 1),
		width:   opts.Width,
		height:  opts.Height,
	}

	m.host = host.New(opts.Width, gameRows(opts.Height), opts.Hub.KeyHold(), opts.Now)

	var app *hub.App
	faults := make(chan *engine.UnitFault, 1)
	m.faultCh = faults
	rt, err := engine.New(m.host.Options(engine.Options{
		MaxFrameDelta: opts.Hub.MaxFrameDelta(),
		Seed:          opts.Seed,
		Logger:        opts.Logger,
		OnScore: func(key string, score int) {
			app.ReportScore(key, score)
		},
		OnFault: func(f *engine.UnitFault) {
			select {
			case faults <- f:
			default:
			}
		},
	}))
	if err != nil {
		return Model{}, err
	}
	m.runtime = rt

	changes := m.changes
	app = hub.New(ctx, hub.Options{
		Runner:  rt,
		Scores:  opts.Scores,
		Gate:    opts.Gate,
		Source:  opts.Source,
		Hub:     opts.Hub,
		Logger:  opts.Logger,
		Factory: opts.Factory,
		OnChange: func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		},
	})
	m.app = app

	m.name = textinput.New()
	m.name.Placeholder = "your name"
	m.name.CharLimit = 24
	m.name.Width = 24

	app.Boot()
	if app.Screen() == hub.ScreenAuth {
		m.name.Focus()
	}
	return m, nil
}

func gameRows(height int) int {
	return max(1, height-statusRows)
}

// App returns the session's hub.
func (m Model) App() *hub.App { return m.app }

// Init starts listening for hub changes and opens the first screen.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.changes)}
	switch m.app.Screen() {
	case hub.ScreenAuth:
		cmds = append(cmds, textinput.Blink)
	case hub.ScreenMenu:
		if m.opts.Autostart != "" {
			key := m.opts.Autostart
			cmds = append(cmds, func() tea.Msg { return selectMsg{key: key} })
		} else {
			m.loadPreview()
		}
	}
	return tea.Batch(cmds...)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changeMsg{}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m.quit()
		}
		if m.scores != nil {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case changeMsg:
		return m, waitForChange(m.changes)

	case selectMsg:
		return m.play(msg.key)

	case scoresLoadedMsg:
		if m.scores != nil {
			return m.updateScoreboard(msg)
		}
		return m, nil
	}

	if m.app.Screen() == hub.ScreenAuth {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.host.ReleaseKeys()
	m.runtime.Stop()
	m.quitting = true
	return m, tea.Quit
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.app.Screen() {
	case hub.ScreenAuth:
		return m.handleAuthKey(msg)
	case hub.ScreenMenu:
		return m.handleMenuKey(msg)
	case hub.ScreenGame:
		return m.handleGameKey(msg)
	case hub.ScreenLeaderboard:
		return m.handleLeaderboardKey(msg)
	}
	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		if err := m.app.SignIn(m.name.Value()); err != nil {
			m.status = signInMessage(err)
			return m, nil
		}
		m.status = ""
		m.name.Blur()
		m.name.Reset()
		if m.opts.Autostart != "" {
			return m.play(m.opts.Autostart)
		}
		m.loadPreview()
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func signInMessage(err error) string {
	if errors.Is(err, hub.ErrEmptyName) {
		return "Please enter a name"
	}
	return "Sign-in failed: " + err.Error()
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.loadPreview()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.games)-1 {
			m.cursor++
			m.loadPreview()
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.games) > 0 {
			return m.play(m.games[m.cursor].Key)
		}

	case key.Matches(msg, m.keys.Scores):
		sb := NewScoreboardModel(m.opts.Scores, m.games, m.cursor, m.width, m.height)
		m.scores = &sb
		return m, sb.Init()

	case key.Matches(msg, m.keys.SignOut):
		if err := m.app.SignOut(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		cmd := m.name.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.host.ReleaseKeys()
		m.app.BackToMenu()
		m.loadPreview()
		return m, nil
	case msg.String() == "r":
		return m.restart()
	}
	m.host.Key(msg.String(), m.opts.Now())
	return m, nil
}

func (m Model) handleLeaderboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Restart):
		return m.restart()
	case key.Matches(msg, m.keys.Back):
		m.app.BackToMenu()
		m.loadPreview()
	}
	return m, nil
}

// play starts a title and the frame loop.
func (m Model) play(k registry.Key) (tea.Model, tea.Cmd) {
	m.host.ReleaseKeys()
	if err := m.app.Select(k); err != nil {
		m.logger.Error("cannot start game", "game", k, "err", err)
		m.status = err.Error()
		return m, nil
	}
	for i, g := range m.games {
		if g.Key == k {
			m.cursor = i
		}
	}
	m.status = ""
	return m.startTicking()
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	m.host.ReleaseKeys()
	if err := m.app.Restart(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	return m.startTicking()
}

func (m Model) startTicking() (tea.Model, tea.Cmd) {
	if m.ticking || m.app.Screen() != hub.ScreenGame {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.opts.Hub.FrameInterval())
}

// handleTick runs one host frame while a game is up. The loop stops on any
// other screen and is restarted by play.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.app.Screen() != hub.ScreenGame {
		m.ticking = false
		return m, nil
	}
	m.host.Frame(now)

	select {
	case f := <-m.faultCh:
		m.status = "Game crashed: " + f.Error()
		m.app.BackToMenu()
		m.loadPreview()
	default:
	}

	if m.app.Screen() != hub.ScreenGame {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.opts.Hub.FrameInterval())
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.app.Screen() != hub.ScreenGame {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.Y < m.host.Screen().Height() {
			m.host.MousePress(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		m.host.MouseMotion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.host.MouseRelease(msg.X, msg.Y)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.host.Resize(msg.Width, gameRows(msg.Height))
	if m.scores != nil {
		return m.updateScoreboard(msg)
	}
	return m, nil
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	sb, cmd := m.scores.Update(msg)
	if sb.IsGoingBack() {
		m.scores = nil
		m.loadPreview()
		return m, nil
	}
	if sb.IsQuitting() {
		m.scores = nil
		return m.quit()
	}
	m.scores = &sb
	return m, cmd
}

func (m Model) loadPreview() {
	if len(m.games) == 0 || m.opts.Scores == nil {
		return
	}
	m.app.LoadPreview(m.games[m.cursor].Key)
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}
	switch m.app.Screen() {
	case hub.ScreenAuth:
		return m.authView()
	case hub.ScreenMenu:
		return m.menuView()
	case hub.ScreenGame:
		return m.gameView()
	case hub.ScreenLeaderboard:
		return m.leaderboardView()
	}
	return ""
}

// Run starts the Bubble Tea program for one local session and blocks
// until the player quits.
func Run(ctx context.Context, opts Options) error {
	model, err := NewModel(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	model.runtime.Stop()
	model.app.Wait()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
