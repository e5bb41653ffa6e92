package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/adamavenir/murmur/internal/archive"
	"github.com/adamavenir/murmur/internal/client"
	"github.com/adamavenir/murmur/internal/live"
	"github.com/adamavenir/murmur/internal/session"
	"github.com/adamavenir/murmur/internal/types"
)

// Options configure a chat session.
type Options struct {
	Client   *client.Client
	RoomID   string
	Username string
	Archive  *archive.Store
}

// Run connects to the room and starts the chat UI. It returns when the
// user leaves the room; the session and subscription are torn down as a
// unit before it does.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	fmt.Printf("\033]0;murmur · %s\007", opts.RoomID)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	model.Close()
	return err
}

// Model implements the chat UI. It is the single writer of the session:
// history results, live events, and key presses all arrive as tea messages
// and are handled to completion one at a time.
type Model struct {
	client   *client.Client
	archive  *archive.Store
	session  *session.Session
	live     *live.Conn
	clientID string

	viewport viewport.Model
	input    textarea.Model
	search   textinput.Model

	width  int
	height int
	ready  bool

	status        string
	searchMode    bool
	selectMode    bool
	selectIndex   int
	highlightedID string

	suggestions     []suggestionItem
	suggestionIndex int

	msgLines map[string]int
	quitting bool
}

// NewModel builds the model and its room session.
func NewModel(opts Options) (*Model, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("chat: client is required")
	}
	if opts.RoomID == "" || opts.Username == "" {
		return nil, fmt.Errorf("chat: room and username are required")
	}

	input := textarea.New()
	input.Placeholder = "Type your message here..."
	input.CharLimit = 2000
	input.SetHeight(1)
	input.ShowLineNumbers = false
	input.Focus()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search chat..."

	m := &Model{
		client:   opts.Client,
		archive:  opts.Archive,
		session:  session.New(opts.RoomID, opts.Username),
		clientID: uuid.NewString(),
		input:    input,
		search:   searchInput,
		msgLines: make(map[string]int),
	}

	m.session.SetObserver(func(msg types.Message) {
		if m.archive != nil {
			_ = m.archive.Record(opts.RoomID, msg)
		}
		maybeNotify(msg, opts.Username)
	})

	return m, nil
}

// Init fetches history and opens the live subscription.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadHistoryCmd(), m.connectCmd(), textarea.Blink)
}

// Close tears down the live subscription.
func (m *Model) Close() {
	if m.live != nil {
		_ = m.live.Close()
	}
}
