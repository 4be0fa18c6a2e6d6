// Package rezeos is an animated desktop for [Ebitengine]: cursor trails and
// firework bursts on a transparent particle layer, plus a "decode" text
// effect that types out a cipher and then reveals the plaintext.
//
// # Quick start
//
// The simplest way to get started is [Run], which loads the embedded
// defaults, opens a window and blocks until it is closed:
//
//	if err := rezeos.Run(rezeos.RunConfig{ShowFPS: true}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control build a [Desktop] with [NewDesktop] and pass it to
// [ebiten.RunGame] yourself; it implements [ebiten.Game].
//
// # Particles
//
// An [Engine] owns the live particle set and repaints a [Surface] once per
// [Engine.Tick]. Three kinds exist: trail dots spawned by
// [Engine.PointerMoved] and [Engine.SpawnTrail], firework sparks and a single
// expanding shockwave ring spawned together by [Engine.SpawnBurst]. Every
// burst also pulses a [Flasher], normally the [Overlay].
//
// [ImageSurface] draws with ebiten's vector package for the live window;
// [CanvasSurface] rasterises in software with gg for headless runs.
//
//	tl := rezeos.NewTimeline()
//	overlay := rezeos.NewOverlay(tl, rezeos.DefaultOverlayConfig())
//	engine := rezeos.NewEngine(rezeos.DefaultParticleConfig(),
//		rezeos.NewCanvasSurface(640, 480), rezeos.WithFlasher(overlay))
//	engine.SpawnBurst(320, 240)
//	engine.Tick()
//
// # Decode text
//
// A [Presenter] runs Idle, Typing, Holding and Revealing on a [Timeline], the
// virtual clock that owns every deferred step and tween (via [gween]). A
// trigger that arrives mid-reveal is dropped. The [Rotator] picks a [Quote]
// for the current [Mode] and hour every few seconds and hands it to the
// presenter.
//
// # Configuration
//
// [Load] merges a YAML file over the embedded defaults. Quotes come from an
// embedded CSV table or a file of the same shape (see [ParseQuotes]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package rezeos
