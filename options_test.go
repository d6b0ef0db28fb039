package compositor

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.tileWidth != DefaultTileWidth || o.tileHeight != DefaultTileHeight {
		t.Errorf("tile size = %dx%d, want default", o.tileWidth, o.tileHeight)
	}
	if o.minScale != DefaultMinScale || o.maxScale != DefaultMaxScale {
		t.Errorf("scale bounds = [%v, %v], want default", o.minScale, o.maxScale)
	}
	if _, ok := o.device.(NullDevice); !ok {
		t.Errorf("device = %T, want NullDevice", o.device)
	}
	if o.highEndGfx || o.perfMeasures {
		t.Error("high end or perf measures enabled by default")
	}
	if o.maxMeasures != DefaultMaxPerfMeasures {
		t.Errorf("maxMeasures = %d, want %d", o.maxMeasures, DefaultMaxPerfMeasures)
	}
}

func TestOptionsNilRestoreDefaults(t *testing.T) {
	o := defaultOptions()
	WithDevice(bgraDevice{})(&o)
	WithDevice(nil)(&o)
	if _, ok := o.device.(NullDevice); !ok {
		t.Errorf("WithDevice(nil): device = %T, want NullDevice", o.device)
	}

	fixed := time.Unix(42, 0)
	WithClock(func() time.Time { return fixed })(&o)
	WithClock(nil)(&o)
	if got := o.clock(); !got.Equal(fixed) {
		t.Errorf("WithClock(nil) replaced the clock: %v", got)
	}

	WithFaultHandler(nil)(&o)
	defer func() {
		if r := recover(); r == nil {
			t.Error("WithFaultHandler(nil) handler did not panic")
		}
	}()
	o.faultHandler(errors.New("boom"))
}

func TestWithPerfMeasures(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		wantMax int
	}{
		{"explicit", 10, 10},
		{"zero", 0, DefaultMaxPerfMeasures},
		{"negative", -5, DefaultMaxPerfMeasures},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			WithPerfMeasures(true, tt.max)(&o)
			if !o.perfMeasures || o.maxMeasures != tt.wantMax {
				t.Errorf("perfMeasures=%v maxMeasures=%d, want true %d", o.perfMeasures, o.maxMeasures, tt.wantMax)
			}
		})
	}
}

func TestScaleError(t *testing.T) {
	err := error(&ScaleError{Scale: 0, Min: 0.1, Max: 10})
	if !errors.Is(err, ErrCorruptScale) {
		t.Error("ScaleError does not wrap ErrCorruptScale")
	}
	want := "compositor: scale corrupted: 0.000000e+00 outside [0.1, 10] after update"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestScaleInBounds(t *testing.T) {
	tests := []struct {
		scale float32
		want  bool
	}{
		{0.1, true},
		{1, true},
		{10, true},
		{0.09, false},
		{10.5, false},
	}
	for _, tt := range tests {
		if got := scaleInBounds(tt.scale, 0.1, 10); got != tt.want {
			t.Errorf("scaleInBounds(%v) = %v, want %v", tt.scale, got, tt.want)
		}
	}
}
