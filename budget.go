package compositor

import "github.com/chewxy/math32"

// Default tile dimensions in pixels.
const (
	DefaultTileWidth  = 256
	DefaultTileHeight = 256
)

// Texture multipliers applied to the visible tile footprint.
// The extra textures hold prefetched tiles and double-buffered content.
const (
	lowEndTextureMultiplier  = 2
	highEndTextureMultiplier = 4
)

// TileFootprint returns how many tiles are needed to cover the viewport in
// each direction at the given scale. One extra tile is counted on each axis
// because a scrolled viewport straddles tile boundaries.
func TileFootprint(viewport Rect, scale float32, tileWidth, tileHeight int) (tilesX, tilesY int) {
	invTileWidth := scale / float32(tileWidth)
	invTileHeight := scale / float32(tileHeight)

	tilesX = int(math32.Ceil((viewport.Width()-1)*invTileWidth)) + 1
	tilesY = int(math32.Ceil((viewport.Height()-1)*invTileHeight)) + 1
	return tilesX, tilesY
}

// TextureBudget returns the maximum number of tile textures that may be
// resident at once for the viewport. No hardware ceiling is applied here;
// the tile texture manager clamps to its own device limits.
func TextureBudget(viewport Rect, scale float32, tileWidth, tileHeight int, highEndGfx bool) int {
	tilesX, tilesY := TileFootprint(viewport, scale, tileWidth, tileHeight)
	multiplier := lowEndTextureMultiplier
	if highEndGfx {
		multiplier = highEndTextureMultiplier
	}
	return tilesX * tilesY * multiplier
}
