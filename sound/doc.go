// Package sound plays short synthesized effects for game events.
//
// Player implements driver.Renderer: eating food chirps, a collision buzzes
// and a new best score plays a rising chime. The speaker is opened on the
// first sound, so a Player costs nothing until something is heard. If the
// audio device cannot be opened the Player logs once and stays silent.
package sound
