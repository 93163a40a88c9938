// Package dbus gives each running dialog a presence on the session bus.
// A dialog claims a unique bus name derived from its ID and exports an object
// with Dismiss and Info methods and a Dismissed signal. The Client finds
// running dialogs by name prefix to list or dismiss them.
package dbus
