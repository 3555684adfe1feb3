package ui

import (
	"context"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// newMessageDialog builds a modal with an icon next to the message
func newMessageDialog(title, message string, icon fyne.Resource, parent fyne.Window) dialog.Dialog {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	content := container.NewBorder(nil, nil, widget.NewIcon(icon), nil, label)
	d := dialog.NewCustom(title, DialogDismiss, content, parent)
	d.Resize(fyne.NewSize(WindowWidth*0.8, 0))
	return d
}

// DialogPrompter asks for a new file name with a modal form.
// PromptRename blocks, so it must be called off the UI goroutine.
type DialogPrompter struct {
	window fyne.Window
}

// NewDialogPrompter creates a prompter for window
func NewDialogPrompter(window fyne.Window) *DialogPrompter {
	return &DialogPrompter{window: window}
}

// PromptRename returns the typed name, or "" when the dialog is dismissed
func (p *DialogPrompter) PromptRename(ctx context.Context, outputPath string) (string, error) {
	answer := make(chan string, 1)

	fyne.Do(func() {
		entry := widget.NewEntry()
		entry.SetPlaceHolder(filepath.Base(outputPath))
		items := []*widget.FormItem{
			widget.NewFormItem("", widget.NewLabel(fmt.Sprintf(RenamePromptFormat, filepath.Base(outputPath)))),
			widget.NewFormItem("Name", entry),
		}
		form := dialog.NewForm(RenameTitle, RenameConfirm, RenameDismiss, items, func(confirmed bool) {
			if confirmed {
				answer <- entry.Text
				return
			}
			answer <- ""
		}, p.window)
		form.Resize(fyne.NewSize(WindowWidth*0.9, 0))
		form.Show()
		p.window.Canvas().Focus(entry)
	})

	select {
	case name := <-answer:
		return name, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// DialogNotifier shows each notification as a modal and waits until it is closed.
// Notify blocks, so it must be called off the UI goroutine.
type DialogNotifier struct {
	window fyne.Window
}

// NewDialogNotifier creates a notifier for window
func NewDialogNotifier(window fyne.Window) *DialogNotifier {
	return &DialogNotifier{window: window}
}

// Notify shows an information dialog and returns once it is dismissed
func (n *DialogNotifier) Notify(title, message string) {
	closed := make(chan struct{})
	fyne.Do(func() {
		d := dialog.NewInformation(title, message, n.window)
		d.SetOnClosed(func() { close(closed) })
		d.Show()
	})
	<-closed
}
