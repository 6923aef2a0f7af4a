// Package ebitenhost runs the renderer inside an ebiten window instead of
// SDL2 and OpenGL. It is only built with the ebiten build tag.
package ebitenhost
