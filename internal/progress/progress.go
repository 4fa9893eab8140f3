package progress

import (
	"fmt"
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Reporter renders a hash counter for an open-ended nonce search.
type Reporter struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func New(w io.Writer, difficulty int) *Reporter {
	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(60))
	bar := p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(fmt.Sprintf("mining (difficulty %d): ", difficulty)),
			decor.CurrentNoUnit("%d hashes", decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.AverageSpeed(0, "%.0f h/s", decor.WCSyncSpace),
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO), "done!"),
		),
	)
	return &Reporter{p: p, bar: bar}
}

// Add is a hashcash.ProgressFunc; safe for concurrent use.
func (r *Reporter) Add(hashes uint64) {
	r.bar.IncrInt64(int64(hashes))
}

// Hashes returns the number of digests counted so far.
func (r *Reporter) Hashes() int64 {
	return r.bar.Current()
}

// Done completes the bar at its current count and waits for the last render.
func (r *Reporter) Done() {
	r.bar.SetTotal(-1, true)
	r.p.Wait()
}
