// Package audio plays the optional sound shown alongside a dialog.
// It uses the beep library to decode WAV, OGG and MP3 files.
package audio
