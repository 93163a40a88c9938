package dbus

import (
	"sort"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/wmdialog/internal/model"
)

const (
	// Interface is the dialog interface name.
	Interface = "io.github.jmylchreest.wmdialog.Dialog"
	// Path is the object path every dialog exports.
	Path = dbus.ObjectPath("/io/github/jmylchreest/wmdialog")
	// BusNamePrefix starts every dialog's bus name.
	BusNamePrefix = "io.github.jmylchreest.wmdialog."

	// idElementPrefix keeps the last name element from starting with a digit.
	idElementPrefix = "D"
)

// BusName returns the bus name a dialog with id claims.
func BusName(id string) string {
	return BusNamePrefix + idElementPrefix + id
}

// IDFromBusName extracts a dialog ID from a bus name. It reports false for
// names that do not belong to a dialog.
func IDFromBusName(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, BusNamePrefix+idElementPrefix)
	if !ok {
		return "", false
	}
	id, err := model.ParseID(rest)
	if err != nil {
		return "", false
	}
	return id, true
}

// dialogIDs returns the dialog IDs among names in sorted order.
func dialogIDs(names []string) []string {
	var ids []string
	for _, name := range names {
		if id, ok := IDFromBusName(name); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Info is the reply of the Info method.
type Info struct {
	ID        string
	PID       uint32
	Lines     []string
	StartedAt int64
	TimeoutMs int64
}

func infoFromDialog(d model.Dialog) Info {
	return Info{
		ID:        d.ID,
		PID:       uint32(d.PID),
		Lines:     d.Lines,
		StartedAt: d.StartedAt,
		TimeoutMs: d.TimeoutMs,
	}
}

// Dialog converts the reply to the model type.
func (i Info) Dialog() model.Dialog {
	return model.Dialog{
		ID:        i.ID,
		PID:       int(i.PID),
		Lines:     i.Lines,
		StartedAt: i.StartedAt,
		TimeoutMs: i.TimeoutMs,
	}
}

// dialogMethods returns the D-Bus method introspection data.
func dialogMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Dismiss",
		},
		{
			Name: "Info",
			Args: []introspect.Arg{
				{Name: "id", Type: "s", Direction: "out"},
				{Name: "pid", Type: "u", Direction: "out"},
				{Name: "lines", Type: "as", Direction: "out"},
				{Name: "started_at", Type: "x", Direction: "out"},
				{Name: "timeout_ms", Type: "x", Direction: "out"},
			},
		},
	}
}

// dialogSignals returns the D-Bus signal introspection data.
func dialogSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "Dismissed",
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "reason", Type: "s"},
			},
		},
	}
}
