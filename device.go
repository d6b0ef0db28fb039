package compositor

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// highEndTextureDimension is the smallest 2D texture limit treated as a
// high-end GPU. The WebGPU default limit is 8192.
const highEndTextureDimension = 16384

// NullDevice stands in for the host GPU when none was given to New.
// It exposes no GPU objects and no surface, so tile textures fall back to
// RGBA8Unorm.
type NullDevice struct{}

func (NullDevice) Device() gpucontext.Device   { return nil }
func (NullDevice) Queue() gpucontext.Queue     { return nil }
func (NullDevice) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat is always TextureFormatUndefined: no surface is attached.
func (NullDevice) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an adapter of unknown type named "null".
func (NullDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "null", Type: gpucontext.AdapterTypeUnknown}
}

var _ gpucontext.DeviceProvider = NullDevice{}

// HighEndGfx reports whether the device limits put the GPU in the high-end
// tier, which gets a larger tile texture budget.
func HighEndGfx(limits gputypes.Limits) bool {
	return limits.MaxTextureDimension2D >= highEndTextureDimension
}

// tileTextureFormat returns the texture format for tiles on the device.
// Devices without a surface format get RGBA8.
func tileTextureFormat(device gpucontext.DeviceProvider) gputypes.TextureFormat {
	if device == nil {
		return gputypes.TextureFormatRGBA8Unorm
	}
	if f := device.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return gputypes.TextureFormatRGBA8Unorm
}
