package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/wmdialog/internal/model"
)

// Server exports one dialog on the session bus.
type Server struct {
	conn      *dbus.Conn
	logger    *slog.Logger
	dialog    model.Dialog
	onDismiss func()

	mu      sync.Mutex
	running bool
}

// NewServer creates a server for dialog. onDismiss runs when a client calls
// Dismiss; it is called on its own goroutine so the reply is not held up by
// teardown.
func NewServer(dialog model.Dialog, onDismiss func(), logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:    logger,
		dialog:    dialog,
		onDismiss: onDismiss,
	}
}

// BusName returns the bus name this server claims.
func (s *Server) BusName() string {
	return BusName(s.dialog.ID)
}

// Start connects to the session bus, exports the dialog object and claims
// the dialog's bus name.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server already running")
	}

	// A private connection so Stop can close it without affecting anyone else.
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(&object{server: s}, Path, Interface); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: string(Path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: dialogMethods(),
				Signals: dialogSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	name := s.BusName()
	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("bus name %s already taken", name)
	}

	s.conn = conn
	s.running = true
	s.logger.Debug("D-Bus dialog object exported", "name", name, "path", Path)
	return nil
}

// EmitDismissed emits the Dismissed signal with the winning reason.
func (s *Server) EmitDismissed(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(Path, Interface+".Dismissed", s.dialog.ID, reason)
	if err != nil {
		return fmt.Errorf("failed to emit Dismissed signal: %w", err)
	}

	s.logger.Debug("emitted Dismissed signal", "id", s.dialog.ID, "reason", reason)
	return nil
}

// Stop releases the bus name and closes the connection.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(s.BusName()); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	return s.conn.Close()
}

// info returns the Info reply for this dialog.
func (s *Server) info() Info {
	return infoFromDialog(s.dialog)
}

// dismiss hands a remote dismissal to the handler.
func (s *Server) dismiss() {
	s.logger.Debug("Dismiss called", "id", s.dialog.ID)
	if s.onDismiss != nil {
		go s.onDismiss()
	}
}

// object is the value exported on the bus. Only its methods are visible to
// clients.
type object struct {
	server *Server
}

// Dismiss asks the dialog to close.
// D-Bus method: Dismiss() -> nothing
func (o *object) Dismiss() *dbus.Error {
	o.server.dismiss()
	return nil
}

// Info describes the dialog.
// D-Bus method: Info() -> (suasxx)
func (o *object) Info() (string, uint32, []string, int64, int64, *dbus.Error) {
	i := o.server.info()
	return i.ID, i.PID, i.Lines, i.StartedAt, i.TimeoutMs, nil
}
