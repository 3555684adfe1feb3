package main

import (
	"fmt"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// itemBars shows one 0-100 bar per downloaded item
type itemBars struct {
	progress *mpb.Progress
	current  *mpb.Bar
	bars     int
}

func newItemBars(progress *mpb.Progress) *itemBars {
	return &itemBars{progress: progress}
}

// start completes the previous bar and adds one for the next item
func (b *itemBars) start(index, total int, name string) {
	b.complete()
	label := name
	if total > 1 {
		label = fmt.Sprintf("[%d/%d] %s", index, total, name)
	}
	b.current = b.progress.AddBar(100,
		mpb.PrependDecorators(decor.Name(shorten(label, 40), decor.WC{W: 41, C: decor.DidentRight})),
		mpb.AppendDecorators(decor.Percentage(decor.WC{W: 5})),
	)
	b.bars++
}

// set moves the current bar to percent
func (b *itemBars) set(percent float64) {
	if b.current != nil {
		b.current.SetCurrent(int64(percent))
	}
}

// complete marks the current bar done, even when the item failed part way
func (b *itemBars) complete() {
	if b.current != nil && !b.current.Completed() {
		b.current.SetTotal(100, true)
	}
}

// wait completes the last bar and waits for rendering to finish
func (b *itemBars) wait() {
	b.complete()
	b.progress.Wait()
}

func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
