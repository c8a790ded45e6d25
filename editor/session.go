package editor

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/benoitkugler/svgstyler/catalog"
	"github.com/benoitkugler/svgstyler/config"
	"github.com/benoitkugler/svgstyler/logging"
	"github.com/benoitkugler/svgstyler/palette"
	"github.com/benoitkugler/svgstyler/svgdoc"
	"github.com/benoitkugler/svgstyler/svgpdf"
	"github.com/benoitkugler/svgstyler/svgraster"
	"github.com/benoitkugler/svgstyler/viewport"
)

// PlaceholderPreset is the entry shown by the preset selector
// when nothing is selected.
const PlaceholderPreset = "Select a style"

// Options parametrize a Session.
type Options struct {
	Viewport     viewport.Config
	ViewportSize viewport.Size
	Loader       svgdoc.Options
	DefaultColor string
	LoadPolicy   config.LoadPolicy
}

// DefaultOptions mirrors config.DefaultConfig.
func DefaultOptions() Options {
	opts, _ := OptionsFromConfig(config.DefaultConfig())
	return opts
}

// OptionsFromConfig extracts the session options from cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	loader, err := cfg.LoaderOptions()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Viewport:     cfg.ViewportConfig(),
		ViewportSize: cfg.ViewportSize(),
		Loader:       loader,
		DefaultColor: cfg.Palette.DefaultColor,
		LoadPolicy:   cfg.Loader.LoadPolicy,
	}, nil
}

// Session is the whole editing state: the displayed document, the
// style catalog, the palette and the viewport.
//
// A Session is not safe for concurrent use: it is meant to be
// driven from a single goroutine, see Editor.
type Session struct {
	opts Options

	doc      *svgdoc.Document
	docGen   uint64 // number of documents displayed so far
	catalog  *catalog.Catalog
	palette  *palette.State
	view     viewport.State
	root     *ViewRoot
	release  func()
	selected string

	loadSeq uint64 // id of the most recently started load

	onChange func()
}

// NewSession returns an empty session, with no document.
func NewSession(opts Options) *Session {
	if opts.LoadPolicy == "" {
		opts.LoadPolicy = config.LoadLastCallback
	}
	return &Session{
		opts:     opts,
		catalog:  catalog.New(),
		palette:  palette.New(opts.DefaultColor),
		view:     viewport.NewState(opts.ViewportSize),
		root:     NewViewRoot(),
		release:  func() {},
		selected: PlaceholderPreset,
		onChange: func() {},
	}
}

func (s *Session) changed() { s.onChange() }

// LoaderOptions returns the options used to parse new documents.
func (s *Session) LoaderOptions() svgdoc.Options { return s.opts.Loader }

// Document returns the displayed document, or nil.
func (s *Session) Document() *svgdoc.Document { return s.doc }

// beginLoad registers a new load and returns its id.
func (s *Session) beginLoad() uint64 {
	s.loadSeq++
	return s.loadSeq
}

// completeLoad displays doc, the result of load seq. Under the
// last-initiated policy, the result of a superseded load is dropped.
func (s *Session) completeLoad(seq uint64, doc *svgdoc.Document) error {
	if s.opts.LoadPolicy == config.LoadLastInitiated && seq != s.loadSeq {
		logging.Logger().Warn("dropping stale load",
			slog.Uint64("load", seq), slog.Uint64("latest", s.loadSeq))
		return ErrStaleLoad
	}
	s.display(doc)
	return nil
}

// Load displays doc right away, as if a load had just completed.
func (s *Session) Load(doc *svgdoc.Document) {
	s.display(doc)
}

// display replaces the document. The catalog and the palette are kept;
// the viewport goes back to its initial zoom and scroll.
func (s *Session) display(doc *svgdoc.Document) {
	s.release()
	s.doc = doc
	s.docGen++
	s.view = viewport.NewState(s.view.Size)
	s.release = s.root.Attach(doc.ShapeCount(), s.recolor)
	logging.Logger().Info("document loaded",
		slog.Int("shapes", doc.ShapeCount()), slog.Uint64("generation", s.docGen))
	s.changed()
}

// recolor is the click listener of every shape.
func (s *Session) recolor(index int) {
	s.doc.SetShapeColor(index, s.palette.Active())
}

// ListenerCount returns the number of click listeners bound
// by the view root.
func (s *Session) ListenerCount() int { return s.root.ListenerCount() }

// SavePreset captures the current shape colors under name,
// and selects the new preset.
func (s *Session) SavePreset(name string) error {
	var colors []string
	if s.doc != nil {
		colors = s.doc.Colors()
	}
	if err := s.catalog.Save(name, colors); err != nil {
		return err
	}
	s.selected = name
	logging.Logger().Debug("preset saved", slog.String("name", name), slog.Int("entries", len(colors)))
	s.changed()
	return nil
}

// SelectPreset changes the selected preset, without applying it.
func (s *Session) SelectPreset(name string) {
	if name == "" {
		name = PlaceholderPreset
	}
	s.selected = name
	s.changed()
}

// Selected returns the selected preset, or PlaceholderPreset.
func (s *Session) Selected() string { return s.selected }

// ApplyPreset recolors the displayed document from the named preset,
// and selects it.
func (s *Session) ApplyPreset(name string) error {
	if name == "" || name == PlaceholderPreset {
		return ErrNoPresetSelected
	}
	var target catalog.Target = noDocument{}
	if s.doc != nil {
		target = s.doc
	}
	n, err := s.catalog.Apply(name, target)
	if err != nil {
		return err
	}
	s.selected = name
	logging.Logger().Debug("preset applied", slog.String("name", name), slog.Int("applied", n))
	s.changed()
	return nil
}

// ApplySelected applies the selected preset.
func (s *Session) ApplySelected() error { return s.ApplyPreset(s.selected) }

// Presets returns the preset names, in insertion order.
func (s *Session) Presets() []string { return s.catalog.Names() }

// Preset returns the named preset.
func (s *Session) Preset(name string) (catalog.Preset, bool) { return s.catalog.Get(name) }

// ClickShape delivers a click on the shape at index.
func (s *Session) ClickShape(index int) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if !s.root.Dispatch(index) {
		return fmt.Errorf("shape %d: %w", index, ErrUnknownShape)
	}
	s.changed()
	return nil
}

// SetActiveColor changes the active color.
func (s *Session) SetActiveColor(color string) error {
	if err := s.palette.SetActive(color); err != nil {
		return err
	}
	s.changed()
	return nil
}

// ActiveColor returns the active color.
func (s *Session) ActiveColor() string { return s.palette.Active() }

// AddToBank saves the active color as a new swatch and returns its index.
func (s *Session) AddToBank() int {
	i := s.palette.AddToBank()
	s.changed()
	return i
}

// SelectSwatch makes swatch i the active color.
func (s *Session) SelectSwatch(i int) error {
	if err := s.palette.SelectSwatch(i); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Bank returns the saved swatches.
func (s *Session) Bank() []string { return s.palette.Bank() }

// HandleViewport feeds a pointer, wheel or resize event to the viewport.
func (s *Session) HandleViewport(ev viewport.Event) {
	next := s.opts.Viewport.Reduce(s.view, ev)
	if next == s.view {
		return
	}
	s.view = next
	s.changed()
}

// Viewport returns the viewport state.
func (s *Session) Viewport() viewport.State { return s.view }

// ExportPNG rasterizes the displayed document as PNG.
func (s *Session) ExportPNG(w io.Writer) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	return svgraster.WritePNG(w, s.doc)
}

// ExportPDF writes the displayed document as a one page PDF.
func (s *Session) ExportPDF(w io.Writer) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	return svgpdf.WritePDF(w, s.doc)
}

// WriteSVG writes the displayed document, with its current colors.
func (s *Session) WriteSVG(w io.Writer) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	_, err := s.doc.WriteTo(w)
	return err
}

// Snapshot is a read-only view of a Session, sent to the UI.
type Snapshot struct {
	Loaded      bool               `json:"loaded"`
	Generation  uint64             `json:"generation"`
	Title       string             `json:"title,omitempty"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Shapes      []svgdoc.Shape     `json:"shapes"`
	Presets     []string           `json:"presets"`
	Selected    string             `json:"selected"`
	ActiveColor string             `json:"activeColor"`
	Bank        []string           `json:"bank"`
	SkipDefs    bool               `json:"skipDefs"`
	Zoom        float64            `json:"zoom"`
	Transform   viewport.Transform `json:"transform"`
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	out := Snapshot{
		Generation:  s.docGen,
		Shapes:      []svgdoc.Shape{},
		Presets:     s.catalog.Names(),
		Selected:    s.selected,
		SkipDefs:    s.opts.Loader.SkipDefs,
		ActiveColor: s.palette.Active(),
		Bank:        s.palette.Bank(),
		Zoom:        s.view.Zoom,
		Transform:   s.view.Transform(),
	}
	if out.Presets == nil {
		out.Presets = []string{}
	}
	if out.Bank == nil {
		out.Bank = []string{}
	}
	if s.doc != nil {
		out.Loaded = true
		out.Width, out.Height = s.doc.NativeSize()
		if len(s.doc.Titles) > 0 {
			out.Title = s.doc.Titles[0]
		}
		out.Shapes = s.doc.Shapes()
	}
	return out
}

// noDocument is the apply target before any document is loaded.
type noDocument struct{}

func (noDocument) ShapeCount() int           { return 0 }
func (noDocument) SetShapeColor(int, string) {}
