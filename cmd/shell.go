package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgstyler/editor"
	"github.com/benoitkugler/svgstyler/svgdoc"
	"github.com/benoitkugler/svgstyler/svgpdf"
	"github.com/benoitkugler/svgstyler/svgraster"
	"github.com/benoitkugler/svgstyler/viewport"
)

var shellCmd = &cobra.Command{
	Use:   "shell <in.svg>",
	Short: "Edit an SVG image from the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, err := editor.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}
		doc, err := svgdoc.ReadDocument(args[0], opts.Loader)
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		sess := editor.NewSession(opts)
		sess.Load(doc)
		return runShell(sess, promptuiPrompter{}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// prompter asks the user for input.
type prompter interface {
	Select(label string, items []string) (int, error)
	Prompt(label, def string) (string, error)
}

type promptuiPrompter struct{}

func (promptuiPrompter) Select(label string, items []string) (int, error) {
	p := promptui.Select{Label: label, Items: items, Size: len(items)}
	i, _, err := p.Run()
	return i, err
}

func (promptuiPrompter) Prompt(label, def string) (string, error) {
	p := promptui.Prompt{Label: label, Default: def}
	return p.Run()
}

// shell actions, in menu order
const (
	actRecolor     = "Recolor a shape"
	actActiveColor = "Set active color"
	actAddToBank   = "Add active color to bank"
	actPickSwatch  = "Pick color from bank"
	actSavePreset  = "Save style"
	actApplyPreset = "Apply style"
	actZoomIn      = "Zoom in"
	actZoomOut     = "Zoom out"
	actExportPNG   = "Export PNG"
	actExportPDF   = "Export PDF"
	actWriteSVG    = "Write SVG"
	actQuit        = "Quit"
)

var shellActions = []string{
	actRecolor, actActiveColor, actAddToBank, actPickSwatch,
	actSavePreset, actApplyPreset, actZoomIn, actZoomOut,
	actExportPNG, actExportPDF, actWriteSVG, actQuit,
}

// runShell runs the menu loop until the user quits or interrupts.
// Failed actions are reported and the loop goes on.
func runShell(sess *editor.Session, p prompter, out io.Writer) error {
	for {
		snap := sess.Snapshot()
		fmt.Fprintf(out, "%d shapes | active %s | bank %v | zoom %.0f%%\n",
			len(snap.Shapes), snap.ActiveColor, snap.Bank, snap.Transform.ScalePercent)

		i, err := p.Select("Action", shellActions)
		if err != nil {
			return ignoreInterrupt(err)
		}
		if shellActions[i] == actQuit {
			return nil
		}
		err = shellAction(sess, p, out, shellActions[i])
		switch {
		case err == nil, errors.Is(err, promptui.ErrAbort):
		case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
			return nil
		default:
			fmt.Fprintf(out, "! %v\n", err)
		}
	}
}

func ignoreInterrupt(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}

func shellAction(sess *editor.Session, p prompter, out io.Writer, action string) error {
	switch action {
	case actRecolor:
		shapes := sess.Snapshot().Shapes
		if len(shapes) == 0 {
			fmt.Fprintln(out, "the document has no shape")
			return nil
		}
		items := make([]string, len(shapes))
		for i, sh := range shapes {
			items[i] = fmt.Sprintf("#%d <%s> %s", sh.Index, sh.Tag, sh.Color)
		}
		i, err := p.Select("Shape", items)
		if err != nil {
			return err
		}
		return sess.ClickShape(i)
	case actActiveColor:
		c, err := p.Prompt("Color", sess.ActiveColor())
		if err != nil {
			return err
		}
		return sess.SetActiveColor(c)
	case actAddToBank:
		sess.AddToBank()
	case actPickSwatch:
		bank := sess.Bank()
		if len(bank) == 0 {
			fmt.Fprintln(out, "the bank is empty")
			return nil
		}
		i, err := p.Select("Swatch", bank)
		if err != nil {
			return err
		}
		return sess.SelectSwatch(i)
	case actSavePreset:
		name, err := p.Prompt("Style name", "")
		if err != nil {
			return err
		}
		return sess.SavePreset(name)
	case actApplyPreset:
		items := append([]string{editor.PlaceholderPreset}, sess.Presets()...)
		i, err := p.Select("Style", items)
		if err != nil {
			return err
		}
		return sess.ApplyPreset(items[i])
	case actZoomIn:
		sess.HandleViewport(viewport.Wheel{DeltaY: -10})
	case actZoomOut:
		sess.HandleViewport(viewport.Wheel{DeltaY: 10})
	case actExportPNG:
		return writeFile(p, out, svgraster.ExportFilename, sess.ExportPNG)
	case actExportPDF:
		return writeFile(p, out, svgpdf.ExportFilename, sess.ExportPDF)
	case actWriteSVG:
		return writeFile(p, out, "styled.svg", sess.WriteSVG)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// writeFile asks for a file name and fills it with write.
func writeFile(p prompter, out io.Writer, def string, write func(io.Writer) error) error {
	name, err := p.Prompt("File", def)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(out, "wrote "+strconv.Quote(name))
	return nil
}
