// Package compositor makes the per-frame decisions of a tile-based GPU
// compositor.
//
// # Overview
//
// A host rendering loop calls [State.DrawFrame] once per vsync. Each frame
// the compositor:
//
//   - sizes the tile texture budget for the viewport ([TextureBudget]),
//   - tracks scrolling and scroll direction ([Viewport]),
//   - picks a layer [RenderingMode] for the reported texture demand, with
//     hysteresis so the mode does not flap ([SelectRenderingMode]),
//   - resolves the invalidations reported during the frame into one inval
//     rectangle for the host ([DirtyArea]).
//
// Rasterization, texture upload, the layer tree and image decoding live in
// collaborators: [TileTextureManager], [SceneCollectionManager],
// [ImageTextureManager] and [VideoTextureManager].
//
// # Quick Start
//
//	st, err := compositor.New(tiles, scenes,
//	    compositor.WithImageManager(images),
//	    compositor.WithDevice(provider),
//	)
//	if err != nil {
//	    return err
//	}
//
//	st.SetBaseLayer(layerTree, false, true)
//
//	// Every vsync:
//	res := st.DrawFrame(compositor.FrameParams{
//	    ViewRect:   image.Rect(0, 0, 320, 480),
//	    Viewport:   compositor.RectXYWH(0, scrollY, 320, 480),
//	    Scale:      1,
//	    ShouldDraw: true,
//	})
//	if res.NeedsInval() {
//	    host.Invalidate(res.Inval) // zero rect: whole view
//	}
//
// # Errors
//
// Nothing here fails during a frame. A full upload queue is reported as a
// bool by [State.SetBaseLayer]; running out of textures lowers the rendering
// mode. The one exception is a corrupted scale, which is handed to the
// [FaultHandler] (by default a panic).
//
// # Thread Safety
//
// A State belongs to the rendering thread. It has no locks.
package compositor
