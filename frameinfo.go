package compositor

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Frame-info overlay geometry. The FPS bar is full width at maxFPSValue.
const (
	fpsIndicatorHeight = 10
	maxFPSValue        = 60
	swapCounterModulo  = 10
)

var (
	indicatorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	indicatorFPS        = color.RGBA{R: 255, A: 255}
	indicatorSwaps      = color.RGBA{G: 255, A: 255}
)

// frameInfo holds the frame-timing diagnostics of a State.
type frameInfo struct {
	showIndicator bool
	measuring     bool

	prevDraw    time.Time
	swapCounter int

	delays        []time.Duration
	maxMeasures   int
	totalMeasured int
}

// showFrameInfo records the frame delay and draws the visual indicator:
// an FPS bar and, below it, a bar cycling with every collection swap.
func (s *State) showFrameInfo(rect image.Rectangle, collectionsSwapped bool) {
	fi := &s.info
	if !fi.showIndicator && !fi.measuring {
		return
	}

	now := s.opts.clock()
	delta := now.Sub(fi.prevDraw)
	fi.prevDraw = now

	if fi.measuring {
		fi.delays = append(fi.delays, delta)
		if len(fi.delays) >= fi.maxMeasures {
			fi.dump()
		}
	}

	if collectionsSwapped {
		fi.swapCounter = (fi.swapCounter + 1) % swapCounterModulo
	}

	if s.opts.overlay == nil {
		return
	}

	bar := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+fpsIndicatorHeight)
	fpsRatio := 1.0
	if delta > 0 {
		fpsRatio = (1 / delta.Seconds()) / maxFPSValue
	}
	s.opts.overlay.ClearRect(bar, indicatorBackground)
	s.opts.overlay.ClearRect(scaleWidth(bar, fpsRatio), indicatorFPS)

	bar = bar.Add(image.Pt(0, fpsIndicatorHeight))
	swapRatio := (float64(fi.swapCounter) + 1) / swapCounterModulo
	s.opts.overlay.ClearRect(bar, indicatorBackground)
	s.opts.overlay.ClearRect(scaleWidth(bar, swapRatio), indicatorSwaps)
}

// scaleWidth returns r with its width multiplied by ratio, clamped to [0, 1].
func scaleWidth(r image.Rectangle, ratio float64) image.Rectangle {
	ratio = min(max(ratio, 0), 1)
	r.Max.X = r.Min.X + int(float64(r.Dx())*ratio)
	return r
}

// dump logs the recorded frame delays and clears them. Frame indices keep
// counting across dumps.
func (fi *frameInfo) dump() {
	if len(fi.delays) == 0 {
		return
	}

	log := Logger()
	p := message.NewPrinter(language.English)
	var total time.Duration
	for i, d := range fi.delays {
		log.Debug(p.Sprintf("%d delay: %d ms", fi.totalMeasured+i, d.Milliseconds()))
		total += d
	}
	mean := float64(total.Microseconds()) / float64(len(fi.delays)) / 1000
	log.Debug(p.Sprintf("compositor: %d frames measured, mean delay %.2f ms", len(fi.delays), mean))

	fi.totalMeasured += len(fi.delays)
	fi.delays = fi.delays[:0]
}
