// Package ui contains the Fyne desktop window. It forwards user actions to the
// controller on a worker goroutine and renders the controller's feedback as
// labels, a progress bar, a thumbnail and modal dialogs.
package ui
