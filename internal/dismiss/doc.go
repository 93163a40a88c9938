// Package dismiss coordinates dialog teardown across independent triggers.
//
// A click on the window, the configured timeout, a termination signal, a
// remote D-Bus call and a watched file can all ask for the dialog to close.
// The Controller lets exactly one of them run the teardown; the rest become
// no-ops.
package dismiss
