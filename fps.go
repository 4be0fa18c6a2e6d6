package rezeos

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawDebug prints FPS, TPS, particle counts and presenter state in the
// top-left corner over a semi-transparent panel.
func (d *Desktop) drawDebug(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 4, 4, 180, 84, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, d.debugText(), 8, 8)
}

func (d *Desktop) debugText() string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nparticles: %d (%d sparks)\nmode: %s\ndecode: %s",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		d.engine.Len(),
		d.engine.Count(KindExplosion),
		d.mode,
		d.presenter.State(),
	)
}
