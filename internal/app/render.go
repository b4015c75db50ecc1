package app

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/layout"
	"github.com/deskos/deskos/internal/pool"
	"github.com/deskos/deskos/internal/shell"
	"github.com/deskos/deskos/internal/theme"
)

// Pill edge characters for the title-bar button cluster.
const (
	leftHalfCircle  = string(rune(0xe0b6))
	rightHalfCircle = string(rune(0xe0b4))
)

var baseButtonStyle = lipgloss.NewStyle().Foreground(theme.ButtonFg())

// View renders the whole desktop.
func (d *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(d.Canvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// Canvas composes every visible surface into layers: windows first, then
// the stage strip, chrome bars, and overlays.
func (d *Desktop) Canvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas()
	now := time.Now()

	layersPtr := pool.GetLayerSlice()
	layers := (*layersPtr)[:0]
	defer pool.PutLayerSlice(layersPtr)

	layers = append(layers, d.windowLayers(now)...)

	if d.State.StageManager && d.State.ShowStageThumbnails {
		layers = append(layers, lipgloss.NewLayer(d.renderStageStrip()).
			X(0).Y(config.TopBarHeight).Z(config.ZIndexStageStrip).ID("stage-strip"))
	}

	layers = append(layers, lipgloss.NewLayer(d.renderTopBar()).
		X(0).Y(0).Z(config.ZIndexTopBar).ID("top-bar"))

	if d.State.ShowDock {
		layers = append(layers, lipgloss.NewLayer(d.renderDock()).
			X(0).Y(d.Height-config.DockHeight).Z(config.ZIndexDock).ID("dock"))
	}

	if len(d.Notifications) > 0 {
		content := d.renderNotifications()
		x := d.Width - lipgloss.Width(content) - 1
		if x < 0 {
			x = 0
		}
		layers = append(layers, lipgloss.NewLayer(content).
			X(x).Y(config.TopBarHeight).Z(config.ZIndexNotification).ID("notifications"))
	}

	if d.ShowHelp {
		content := d.renderHelp()
		x := (d.Width - lipgloss.Width(content)) / 2
		y := (d.Height - lipgloss.Height(content)) / 2
		layers = append(layers, lipgloss.NewLayer(content).
			X(max(x, 0)).Y(max(y, 0)).Z(config.ZIndexHelp).ID("help"))
	}

	if d.RenameActive {
		content := d.renderRenamePrompt()
		x := (d.Width - lipgloss.Width(content)) / 2
		y := (d.Height - lipgloss.Height(content)) / 2
		layers = append(layers, lipgloss.NewLayer(content).
			X(max(x, 0)).Y(max(y, 0)).Z(config.ZIndexRename).ID("rename"))
	}

	if d.ShowQuitConfirm {
		content := d.renderQuitConfirm()
		x := (d.Width - lipgloss.Width(content)) / 2
		y := (d.Height - lipgloss.Height(content)) / 2
		layers = append(layers, lipgloss.NewLayer(content).
			X(max(x, 0)).Y(max(y, 0)).Z(config.ZIndexQuitConfirm).ID("quit-confirm"))
	}

	if len(d.State.VisibleWindows()) == 0 && !d.State.StageManager {
		layers = append(layers, lipgloss.NewLayer(d.renderEmptyDesktop()).
			X(0).Y(0).Z(1).ID("empty"))
	}

	canvas.AddLayers(layers...)
	return canvas
}

// windowLayers renders every window at its effective frame. Presentation
// picks the first matching mode: manipulated, fullscreen, maximized,
// stage-managed, then normal; minimized windows render only mid-animation.
func (d *Desktop) windowLayers(now time.Time) []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	for _, w := range d.State.Windows {
		anim, animating := d.Animations.Lookup(w.ID)
		if w.Minimized && !animating {
			continue
		}
		if d.State.StageManager && w.ID != d.State.ActiveID && !animating {
			// Background windows live in the thumbnail strip.
			continue
		}

		rect := rectOf(w)
		z := w.Z
		manipulated := d.Gestures.Active() && d.Gestures.WindowID() == w.ID

		switch {
		case manipulated:
			f := d.Gestures.Frame()
			rect = layout.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
		case animating:
			rect = anim.FrameAt(now)
			z = config.ZIndexAnimating
		case w.Fullscreen:
			rect = layout.Rect{X: 0, Y: 0, Width: d.Width, Height: d.Height}
			z = config.ZIndexFullscreen
		}

		if rect.Width < 2 || rect.Height < 2 {
			continue
		}

		focused := w.ID == d.State.ActiveID
		var content string
		if w.Fullscreen && !animating && !manipulated {
			content = d.renderContent(w, rect.Width, rect.Height, focused)
		} else {
			content = d.renderWindow(w, rect, focused)
		}

		layers = append(layers, lipgloss.NewLayer(content).
			X(rect.X).Y(rect.Y).Z(z).ID(w.ID))
	}
	return layers
}

// renderContent asks the window's component for its inner content at the
// given size.
func (d *Desktop) renderContent(w *shell.Window, width, height int, focused bool) string {
	component := d.Components[w.ID]
	if component == nil {
		component = d.Registry.New(w.AppID)
		d.Components[w.ID] = component
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxWidth(width).
		MaxHeight(height).
		Render(component.Render(width, height, focused))
}

// renderWindow draws the component inside the window chrome.
func (d *Desktop) renderWindow(w *shell.Window, rect layout.Rect, focused bool) string {
	borderColor := theme.BorderUnfocused()
	if focused {
		if d.Mode == AppMode {
			borderColor = theme.BorderFocusedApp()
		} else {
			borderColor = theme.BorderFocusedDesktop()
		}
	}

	inner := d.renderContent(w, rect.Width-2, rect.Height-2, focused)

	box := lipgloss.NewStyle().
		Align(lipgloss.Left).
		AlignVertical(lipgloss.Top).
		Border(config.Border()).
		BorderTop(false).
		BorderForeground(borderColor).
		Width(rect.Width - 2).
		Height(rect.Height - 1)

	return d.addTitleBar(box.Render(inner), borderColor, w)
}

// addTitleBar replaces the missing top border with a line carrying the
// window buttons on the right and stitches the title into the bottom
// border.
func (d *Desktop) addTitleBar(content string, c color.Color, w *shell.Window) string {
	width := max(lipgloss.Width(content)-2, 0)

	buttonStyle := baseButtonStyle.Background(c)
	dash := buttonStyle.Render(" — ")
	cross := buttonStyle.Render(" ✕ ")
	var cluster string
	if w.Tiled {
		cluster = pillWrap(dash+cross, c)
	} else {
		square := buttonStyle.Render(" □ ")
		cluster = pillWrap(dash+square+cross, c)
	}

	// App-supplied controls get their own pill, one border cell to the
	// left. The hit zones in the input package mirror this geometry.
	if tc, ok := d.Component(w.ID).(apps.TitleBarController); ok {
		if controls := tc.TitleControls(); len(controls) > 0 {
			var glyphs strings.Builder
			for _, ctl := range controls {
				glyphs.WriteString(buttonStyle.Render(" " + ctl.Glyph + " "))
			}
			gap := lipgloss.NewStyle().Foreground(c).Render(config.Border().Top)
			cluster = pillWrap(glyphs.String(), c) + gap + cluster
		}
	}

	top := topBorderLine(cluster, width, c)

	lines := strings.Split(content, "\n")
	if len(lines) > 0 {
		lines[len(lines)-1] = bottomBorderLine(w.Title, width, c)
	}

	return top + "\n" + strings.Join(lines, "\n")
}

func pillWrap(content string, c color.Color) string {
	edge := lipgloss.NewStyle().Foreground(c).Render
	return edge(leftHalfCircle) + content + edge(rightHalfCircle)
}

// topBorderLine right-aligns the button cluster inside the top border.
func topBorderLine(cluster string, width int, c color.Color) string {
	border := config.Border()
	fg := lipgloss.NewStyle().Foreground(c)

	spaces := width - lipgloss.Width(cluster)
	if spaces < 0 {
		cluster = ""
		spaces = width
	}
	return fg.Render(border.TopLeft+strings.Repeat(border.Top, spaces)) +
		cluster +
		fg.Render(border.TopRight)
}

// bottomBorderLine stitches the window title into the bottom border.
func bottomBorderLine(title string, width int, c color.Color) string {
	border := config.Border()
	fg := lipgloss.NewStyle().Foreground(c)

	label := ""
	if title != "" && width > 4 {
		label = " " + ansi.Truncate(title, width-4, "…") + " "
	}

	fill := width - lipgloss.Width(label)
	left := 1
	if fill < 0 {
		fill = 0
	}
	return fg.Render(border.BottomLeft+strings.Repeat(border.Bottom, left)) +
		fg.Render(label) +
		fg.Render(strings.Repeat(border.Bottom, max(fill-left, 0))+border.BottomRight)
}

// renderStageStrip draws the left-edge thumbnail column for stage manager.
func (d *Desktop) renderStageStrip() string {
	thumbs := d.State.StageThumbnails()

	stripStyle := lipgloss.NewStyle().
		Width(config.StageStripColumns).
		Height(d.State.Viewport.UsableHeight())

	if len(thumbs) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("no other windows")
		return stripStyle.Render("\n " + empty)
	}

	var cells []string
	for _, w := range thumbs {
		thumb := layout.ScaleToThumbnail(w.Width, w.Height, config.StageThumbnailWidth)

		titleStyle := lipgloss.NewStyle().Foreground(theme.StageStripTitle())

		// Title row carries a close glyph at its right edge; clicking it
		// closes the window without pulling it on stage.
		name := ansi.Truncate(w.Title, max(thumb.Width-2, 1), "…")
		pad := thumb.Width - lipgloss.Width(name) - 1
		if pad < 1 {
			pad = 1
		}
		titleLine := titleStyle.Render(name) +
			strings.Repeat(" ", pad) +
			lipgloss.NewStyle().Foreground(theme.ButtonClose()).Render("✕")

		content := d.renderContent(w, max(thumb.Width-2, 1), max(thumb.Height-2, 1), false)
		boxed := lipgloss.NewStyle().
			Border(config.Border()).
			BorderForeground(theme.StageStripBorder()).
			MaxWidth(thumb.Width).
			MaxHeight(thumb.Height).
			Render(content)

		cells = append(cells, lipgloss.JoinVertical(lipgloss.Left,
			titleLine,
			boxed,
		))
	}

	return stripStyle.Render(lipgloss.JoinVertical(lipgloss.Left, cells...))
}

// StageThumbnailAt hit-tests the thumbnail strip, returning the window
// shown at the given screen cell.
func (d *Desktop) StageThumbnailAt(x, y int) (w *shell.Window, closeHit, ok bool) {
	if !d.State.StageManager || !d.State.ShowStageThumbnails {
		return nil, false, false
	}
	if x >= config.StageStripColumns || y < config.TopBarHeight {
		return nil, false, false
	}

	row := config.TopBarHeight
	for _, w := range d.State.StageThumbnails() {
		thumb := layout.ScaleToThumbnail(w.Width, w.Height, config.StageThumbnailWidth)
		cellHeight := thumb.Height + 1 // title line above the box
		if y >= row && y < row+cellHeight {
			closeHit := y == row && x >= thumb.Width-2 && x <= thumb.Width-1
			return w, closeHit, true
		}
		row += cellHeight
	}
	return nil, false, false
}

// renderTopBar draws the single status row across the top of the screen.
func (d *Desktop) renderTopBar() string {
	barStyle := lipgloss.NewStyle().
		Background(theme.TopBarBg()).
		Foreground(theme.TopBarFg()).
		Width(d.Width)

	modeColor := theme.TopBarModeDesktop()
	modeText := "DESKTOP"
	if d.Mode == AppMode {
		modeColor = theme.TopBarModeApp()
		modeText = "APP"
	}
	mode := lipgloss.NewStyle().
		Background(theme.TopBarBg()).
		Foreground(modeColor).
		Bold(true).
		Render(" " + modeText + " ")

	title := ""
	if w := d.State.ActiveWindow(); w != nil {
		title = w.Title
	}
	if maxTitle := d.Width - lipgloss.Width(mode) - 10; maxTitle > 0 {
		title = ansi.Truncate(title, maxTitle, "…")
	}
	left := mode + barStyle.Render(" "+title)

	clock := barStyle.Render(time.Now().Format("15:04") + " ")
	gap := d.Width - lipgloss.Width(left) - lipgloss.Width(clock)
	if gap < 0 {
		gap = 0
	}

	return left + barStyle.Render(strings.Repeat(" ", gap)) + clock
}

// renderNotifications stacks active notifications newest-first.
func (d *Desktop) renderNotifications() string {
	var cells []string
	for i := len(d.Notifications) - 1; i >= 0; i-- {
		n := d.Notifications[i]

		var accent color.Color
		switch n.Level {
		case apps.LogError:
			accent = theme.NotificationError()
		case apps.LogWarn:
			accent = theme.NotificationWarning()
		default:
			accent = theme.NotificationInfo()
		}

		cells = append(cells, lipgloss.NewStyle().
			Border(config.Border()).
			BorderForeground(accent).
			Background(theme.NotificationBg()).
			Foreground(theme.NotificationFg()).
			Padding(0, 1).
			Render(n.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, cells...)
}

// renderQuitConfirm draws the yes/no quit dialog.
func (d *Desktop) renderQuitConfirm() string {
	question := lipgloss.NewStyle().Bold(true).Render("Quit deskos?")

	yes := " Quit "
	no := " Stay "
	selected := lipgloss.NewStyle().
		Background(theme.NotificationError()).
		Foreground(theme.ButtonFg()).
		Bold(true)
	unselected := lipgloss.NewStyle().Foreground(theme.HelpGray())

	var buttons string
	if d.QuitConfirmSelection == 0 {
		buttons = selected.Render(yes) + "  " + unselected.Render(no)
	} else {
		buttons = unselected.Render(yes) + "  " + selected.Render(no)
	}

	body := lipgloss.JoinVertical(lipgloss.Center, question, "", buttons)
	return lipgloss.NewStyle().
		Border(config.Border()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 3).
		Render(body)
}

// renderRenamePrompt draws the title editor for the active window.
func (d *Desktop) renderRenamePrompt() string {
	label := lipgloss.NewStyle().Bold(true).Render("Rename window")

	field := lipgloss.NewStyle().
		Foreground(theme.WelcomeHighlight()).
		Render(d.RenameBuffer + "█")

	hint := lipgloss.NewStyle().
		Foreground(theme.HelpGray()).
		Render("enter apply · esc cancel")

	body := lipgloss.JoinVertical(lipgloss.Left, label, "", field, "", hint)
	return lipgloss.NewStyle().
		Border(config.Border()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 3).
		Width(40).
		Render(body)
}

// renderEmptyDesktop shows a hint when no windows are open.
func (d *Desktop) renderEmptyDesktop() string {
	hint := fmt.Sprintf("press %s to open a window",
		d.Keybinds.KeysForDisplay(config.ActionNewWindow))
	content := lipgloss.NewStyle().Foreground(theme.HelpGray()).Render(hint)
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, content)
}
