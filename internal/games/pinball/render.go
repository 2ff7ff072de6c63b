package pinball

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/objects"
)

// Minimum screen size the renderer needs.
const (
	minScreenW = 60
	minScreenH = 24
	panelW     = 30
)

// Render draws the current screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.err != nil {
		dst.DrawTextCenteredColored(dst.Height()/2-1, "Cannot build the table", core.ColorWarn)
		dst.DrawTextCenteredColored(dst.Height()/2+1, g.err.Error(), core.ColorDim)
		return
	}

	switch g.mode {
	case ModeRound, ModePlace:
		g.renderPanel(dst)
		g.renderField(dst)
	case ModeResults:
		g.renderResults(dst)
	case ModeShop:
		g.renderShop(dst)
	case ModePack:
		g.renderPack(dst)
	case ModeGameOver:
		g.renderGameOver(dst)
	case ModeExit:
		dst.DrawTextCenteredColored(dst.Height()/2-1, "Round abandoned", core.ColorTitle)
		dst.DrawTextCenteredColored(dst.Height()/2+1, "ENTER to continue the run  Q to quit", core.ColorDim)
	}
	g.renderNotices(dst)
}

// renderPanel draws the HUD and the inventory on the left.
func (g *Game) renderPanel(dst *core.Screen) {
	dst.DrawBoxColored(core.NewRect(0, 0, panelW, dst.Height()), core.ColorDim)
	dst.DrawTextColored(2, 1, fmt.Sprintf("Round %d", g.RoundIndex+1), core.ColorTitle)
	dst.DrawTextColored(2, 2, "$"+formatAmount(g.Money), core.ColorMoney)

	y := 4
	if r := g.Round; r != nil && g.mode == ModeRound {
		dst.DrawTextColored(2, y, "Score "+formatAmount(r.Score), core.ColorScore)
		dst.DrawTextColored(2, y+1, "Need  "+formatAmount(r.Required), core.ColorText)
		dst.DrawTextColored(2, y+2, fmt.Sprintf("Balls %d", len(r.Queue)), core.ColorText)
		bar := int(r.Charge / math.Max(g.cfg.Launch.MaxImpulse, 1) * float64(panelW-10))
		dst.DrawTextColored(2, y+3, "Power ", core.ColorText)
		for i := range max(bar, 0) {
			dst.SetColored(8+i, y+3, '=', core.ColorWarn)
		}
		if r.Finishable() {
			dst.DrawTextColored(2, y+4, "N to finish", core.ColorScore)
		}
		if r.Paused {
			dst.DrawTextColored(2, y+5, "PAUSED  B to abandon", core.ColorWarn)
		}
		y += 7
		for _, it := range r.Applied.Items {
			left := "inf"
			if t := it.TimeLeft(); t >= 0 {
				left = fmt.Sprintf("%.1fs", t)
			}
			dst.DrawTextColored(2, y, truncate(it.Name+" "+left, panelW-4), core.ColorRare)
			y++
		}
		y++
	}
	if g.mode == ModePlace && g.placing != nil {
		dst.DrawTextColored(2, y, "Place "+g.placing.Item.Name, core.ColorTitle)
		if g.placing.Err != nil {
			dst.DrawTextColored(2, y+1, truncate(g.placing.Err.Error(), panelW-4), core.ColorWarn)
		}
		dst.DrawTextColored(2, y+2, "ENTER place  B cancel", core.ColorDim)
		y += 4
	}

	dst.DrawTextColored(2, y, "Inventory", core.ColorTitle)
	for i, it := range g.Inventory.Items {
		c := itemColor(it)
		prefix := "  "
		if i == g.cursor.inv && g.mode == ModeRound {
			prefix = "> "
		}
		dst.DrawTextColored(2, y+1+i, truncate(prefix+it.Name, panelW-4), c)
	}
}

func (g *Game) viewport(dst *core.Screen) core.Viewport {
	l := g.Field.Layout()
	world := core.Bounds{
		MinX: l.LeftWallX - l.WallRadius - 5,
		MinY: l.TopWallY - l.WallRadius - 5,
		MaxX: l.RampWallX + l.WallRadius + 5,
		MaxY: l.ScreenHeight,
	}
	return core.FitViewport(world, core.NewRect(panelW, 0, dst.Width()-panelW, dst.Height()))
}

// renderField draws the table, its objects and the floating labels.
func (g *Game) renderField(dst *core.Screen) {
	v := g.viewport(dst)
	line := func(a, b cp.Vector, r rune, c core.Color) {
		x0, y0, _ := v.ToCell(a.X, a.Y)
		x1, y1, _ := v.ToCell(b.X, b.Y)
		dst.DrawLine(x0, y0, x1, y1, r, c)
	}
	segment := func(s *cp.Shape, r rune, c core.Color) {
		if seg, ok := s.Class.(*cp.Segment); ok {
			line(seg.TransformA(), seg.TransformB(), r, c)
		}
	}

	t := g.Field.Table
	for _, s := range t.Walls {
		segment(s, '#', core.ColorWall)
	}
	if !t.Gate.Sensor() {
		segment(t.Gate, '|', core.ColorGate)
	}
	if !t.Ramp.Sensor() {
		segment(t.Ramp, '/', core.ColorGate)
	}
	if t.ShieldUp() {
		segment(t.Shield, '-', core.ColorShield)
	}

	for _, o := range g.Field.Objects() {
		g.renderObject(dst, v, o, line)
	}
	if r := g.Round; r != nil && g.mode == ModeRound {
		for _, b := range r.Active {
			g.renderObject(dst, v, b, line)
		}
		for _, ht := range r.HitTexts {
			if x, y, ok := v.ToCell(ht.Pos.X, ht.Pos.Y); ok {
				dst.DrawTextColored(x, y, ht.Text, ht.Color)
			}
		}
	}

	if g.mode == ModePlace && g.placing != nil {
		p := g.placing.Cursor
		c := core.ColorScore
		if g.placing.Err != nil {
			c = core.ColorWarn
		}
		if x, y, ok := v.ToCell(p.X, p.Y); ok {
			dst.SetColored(x, y, 'X', c)
		}
	}
}

func (g *Game) renderObject(dst *core.Screen, v core.Viewport, o *objects.GameObject, line func(a, b cp.Vector, r rune, c core.Color)) {
	if f := o.Flipper(); f != nil {
		c := core.ColorFlipper
		if f.IsActive() {
			c = core.ColorBumped
		}
		line(f.Pivot(), f.Tip(), '=', c)
		return
	}

	p := o.Position()
	x, y, ok := v.ToCell(p.X, p.Y)
	if !ok {
		return
	}
	glyph := '*'
	if s, found := g.cfg.Textures[o.Texture]; found && s != "" {
		glyph = []rune(s)[0]
	}

	c := core.ColorDefault
	switch o.Kind {
	case objects.KindBall:
		c = core.ColorBall
	case objects.KindBumper:
		c = core.ColorBumper
	case objects.KindPin:
		c = core.ColorPin
		if o.Flags[flagLit] > 0 {
			c = core.ColorScore
		}
	}
	if o.Bumped > 0 {
		c = core.ColorBumped
	}
	if o.Locked() {
		c = core.ColorDim
	}

	// big objects span more than one cell
	half := v.CellsX(o.Radius)
	if o.Kind == objects.KindBall || half < 1 {
		dst.SetColored(x, y, glyph, c)
		return
	}
	for dx := -half; dx <= half; dx++ {
		dst.SetColored(x+dx, y, glyph, c)
	}
}

func (g *Game) renderResults(dst *core.Screen) {
	res := g.Results
	cy := dst.Height()/2 - 6
	if res.Won {
		dst.DrawTextCenteredColored(cy, fmt.Sprintf("Round %d cleared", res.Round), core.ColorScore)
	} else {
		dst.DrawTextCenteredColored(cy, fmt.Sprintf("Round %d lost", res.Round), core.ColorWarn)
	}
	dst.DrawTextCenteredColored(cy+2, fmt.Sprintf("Score %s / %s", formatAmount(res.Score), formatAmount(res.Required)), core.ColorText)
	if res.Won {
		rows := []string{
			"Award          $" + formatAmount(res.Base),
			fmt.Sprintf("Orders x%-6d $%s", res.ExtraOrders, formatAmount(res.Orders)),
			fmt.Sprintf("Balls  x%-6d $%s", res.BallsLeft, formatAmount(res.Balls)),
			"Interest       $" + formatAmount(res.Interest),
			"Total          $" + formatAmount(res.Total),
		}
		for i, row := range rows {
			dst.DrawTextCenteredColored(cy+4+i, row, core.ColorMoney)
		}
	}
	dst.DrawTextCenteredColored(cy+11, "ENTER to continue", core.ColorDim)
}

func (g *Game) renderShop(dst *core.Screen) {
	w := dst.Width()
	half := w / 2
	dst.DrawTextColored(2, 0, fmt.Sprintf("SHOP  round %d  need %s", g.RoundIndex+1, formatAmount(g.ScoreNeeded())), core.ColorTitle)
	dst.DrawTextColored(half, 0, "$"+formatAmount(g.Money), core.ColorMoney)

	offers := core.NewRect(0, 2, half, dst.Height()-5)
	inv := core.NewRect(half, 2, w-half, dst.Height()-5)
	boxColor := func(pane int) core.Color {
		if g.cursor.pane == pane {
			return core.ColorTitle
		}
		return core.ColorDim
	}
	dst.DrawBoxColored(offers, boxColor(0))
	dst.DrawBoxColored(inv, boxColor(1))
	dst.DrawTextColored(2, 2, " Offers ", boxColor(0))
	dst.DrawTextColored(half+2, 2, fmt.Sprintf(" Inventory %d/%d ", g.Inventory.Len(), g.Inventory.MaxSize), boxColor(1))

	for i, it := range g.Shop.Offers {
		prefix := "  "
		if g.cursor.pane == 0 && i == g.cursor.offer {
			prefix = "> "
		}
		if it == nil {
			dst.DrawTextColored(2, 3+i, prefix+"(sold)", core.ColorDim)
			continue
		}
		text := fmt.Sprintf("%s%-18s $%d", prefix, it.Name, it.BuyPrice)
		dst.DrawTextColored(2, 3+i, truncate(text, half-4), itemColor(it))
	}
	for i, it := range g.Inventory.Items {
		prefix := "  "
		if g.cursor.pane == 1 && i == g.cursor.inv {
			prefix = "> "
		}
		text := fmt.Sprintf("%s%-18s sell $%d", prefix, it.Name, it.Price)
		dst.DrawTextColored(half+2, 3+i, truncate(text, w-half-4), itemColor(it))
	}

	if it := g.selected(); it != nil {
		dst.DrawTextColored(2, dst.Height()-3, truncate(it.Description, w-4), core.ColorText)
	}
	help := fmt.Sprintf("ENTER buy/use  X sell  E reroll $%s  N next round", formatAmount(g.RerollCost))
	dst.DrawTextColored(2, dst.Height()-2, truncate(help, w-4), core.ColorDim)
}

// selected returns the item under the shop cursor.
func (g *Game) selected() *inventory.Item {
	if g.cursor.pane == 0 {
		if g.cursor.offer < len(g.Shop.Offers) {
			return g.Shop.Offers[g.cursor.offer]
		}
		return nil
	}
	if g.cursor.inv < g.Inventory.Len() {
		return g.Inventory.Items[g.cursor.inv]
	}
	return nil
}

func (g *Game) renderPack(dst *core.Screen) {
	p := g.Pack
	if p == nil {
		return
	}
	dst.DrawTextCenteredColored(2, p.Source.Name, core.ColorTitle)
	dst.DrawTextCenteredColored(3, fmt.Sprintf("pick %d", p.Left), core.ColorDim)
	for i, it := range p.Items {
		prefix := "  "
		if i == g.cursor.pack {
			prefix = "> "
		}
		if it == nil {
			dst.DrawTextCenteredColored(5+i, prefix+"(taken)", core.ColorDim)
			continue
		}
		dst.DrawTextCenteredColored(5+i, prefix+it.Name, itemColor(it))
	}
	if g.cursor.pack < len(p.Items) && p.Items[g.cursor.pack] != nil {
		dst.DrawTextCenteredColored(dst.Height()-3, p.Items[g.cursor.pack].Description, core.ColorText)
	}
	dst.DrawTextCenteredColored(dst.Height()-2, "ENTER take  B skip", core.ColorDim)
}

func (g *Game) renderGameOver(dst *core.Screen) {
	cy := dst.Height() / 2
	dst.DrawTextCenteredColored(cy-2, "GAME OVER", core.ColorWarn)
	dst.DrawTextCenteredColored(cy, fmt.Sprintf("Reached round %d", g.RoundIndex+1), core.ColorText)
	dst.DrawTextCenteredColored(cy+2, "R new run  Q quit", core.ColorDim)
}

func (g *Game) renderNotices(dst *core.Screen) {
	y := dst.Height() - 1
	for i := len(g.notices) - 1; i >= 0 && y > 0; i-- {
		dst.DrawTextCenteredColored(y, g.notices[i].text, core.ColorWarn)
		y--
	}
}

func itemColor(it *inventory.Item) core.Color {
	switch it.Rarity {
	case "rare":
		return core.ColorRare
	case "legendary":
		return core.ColorLegendary
	case inventory.RarityNegative:
		return core.ColorWarn
	}
	return core.ColorText
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
