package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/wmdialog/internal/model"
)

// ErrNotFound means no running dialog has the requested ID.
var ErrNotFound = errors.New("no such dialog")

// Client talks to running dialogs over the session bus.
type Client struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// NewClient connects to the session bus.
func NewClient(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{conn: conn, logger: logger}, nil
}

// Close closes the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// IDs returns the IDs of every dialog currently on the bus.
func (c *Client) IDs(ctx context.Context) ([]string, error) {
	var names []string
	err := c.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names)
	if err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}
	return dialogIDs(names), nil
}

// Info asks one dialog to describe itself.
func (c *Client) Info(ctx context.Context, id string) (model.Dialog, error) {
	var info Info
	obj := c.conn.Object(BusName(id), Path)
	err := obj.CallWithContext(ctx, Interface+".Info", 0).
		Store(&info.ID, &info.PID, &info.Lines, &info.StartedAt, &info.TimeoutMs)
	if err != nil {
		return model.Dialog{}, c.callError(ctx, id, err)
	}
	return info.Dialog(), nil
}

// List returns every running dialog, oldest first. Dialogs that exit while
// being listed are skipped.
func (c *Client) List(ctx context.Context) ([]model.Dialog, error) {
	ids, err := c.IDs(ctx)
	if err != nil {
		return nil, err
	}

	dialogs := make([]model.Dialog, 0, len(ids))
	for _, id := range ids {
		d, err := c.Info(ctx, id)
		if err != nil {
			c.logger.Debug("skipping dialog", "id", id, "error", err)
			continue
		}
		dialogs = append(dialogs, d)
	}

	sort.SliceStable(dialogs, func(i, j int) bool {
		return dialogs[i].StartedAt < dialogs[j].StartedAt
	})
	return dialogs, nil
}

// Dismiss closes the dialog with id.
func (c *Client) Dismiss(ctx context.Context, id string) error {
	id, err := model.ParseID(id)
	if err != nil {
		return err
	}
	if !c.hasOwner(ctx, BusName(id)) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	err = c.conn.Object(BusName(id), Path).CallWithContext(ctx, Interface+".Dismiss", 0).Err
	if err != nil {
		// A dialog that tears down before replying has still been dismissed.
		if !c.hasOwner(ctx, BusName(id)) {
			return nil
		}
		return fmt.Errorf("failed to dismiss %s: %w", id, err)
	}
	c.logger.Debug("dismissed dialog", "id", id)
	return nil
}

// DismissAll closes every running dialog and returns how many were dismissed.
func (c *Client) DismissAll(ctx context.Context) (int, error) {
	ids, err := c.IDs(ctx)
	if err != nil {
		return 0, err
	}

	var errs []error
	n := 0
	for _, id := range ids {
		if err := c.Dismiss(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// hasOwner reports whether a connection currently owns name.
func (c *Client) hasOwner(ctx context.Context, name string) bool {
	var owned bool
	err := c.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, name).Store(&owned)
	if err != nil {
		c.logger.Debug("NameHasOwner failed", "name", name, "error", err)
		return false
	}
	return owned
}

// callError maps a failed call on a vanished dialog to ErrNotFound.
func (c *Client) callError(ctx context.Context, id string, err error) error {
	if !c.hasOwner(ctx, BusName(id)) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}
