package gosplice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gosplice/xmltree"
)

// Engine is the file-based translation workflow: it decomposes source
// documents into skeleton, segments and minimal artifacts, reintegrates
// translated content through either path, and validates the result.
type Engine struct {
	cfg *Config
	log zerolog.Logger

	sourceDir       string
	intermediateDir string
	targetDir       string

	sourceLang string
	targetLang string

	genID        IDFunc
	setLangAttrs bool

	classifier *Classifier
	isolator   *Isolator
	segmenter  *Segmenter
	minimizer  Minimizer
	merger     *Merger
	validator  *Validator
}

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the logger. The configured log_level is applied on top.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithSourceDir sets the directory against which relative source paths
// resolve.
func WithSourceDir(dir string) Option {
	return func(e *Engine) {
		e.sourceDir = dir
	}
}

// WithIntermediateDir sets the directory for skeleton, segments, minimal and
// mapping artifacts.
func WithIntermediateDir(dir string) Option {
	return func(e *Engine) {
		e.intermediateDir = dir
	}
}

// WithTargetDir sets the directory for integrated output documents.
func WithTargetDir(dir string) Option {
	return func(e *Engine) {
		e.targetDir = dir
	}
}

// WithLanguages sets the source and target language tags used as keys in the
// segments and translations artifacts.
func WithLanguages(source, target string) Option {
	return func(e *Engine) {
		e.sourceLang = source
		e.targetLang = target
	}
}

// WithIDGenerator replaces the identifier generator. The function must
// return a random hex string of the requested even length with negligible
// collision probability within one document's scope.
func WithIDGenerator(gen IDFunc) Option {
	return func(e *Engine) {
		e.genID = gen
	}
}

// WithLanguageAttributes makes integration stamp xml:lang (and dir for
// right-to-left languages) on the output root element. Off by default
// because it makes the output's root attributes diverge from the source.
func WithLanguageAttributes() Option {
	return func(e *Engine) {
		e.setLangAttrs = true
	}
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		cfg:        cfg,
		log:        zerolog.Nop(),
		sourceLang: "en-US",
		targetLang: "de-DE",
		genID:      NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		e.log = e.log.Level(lvl)
	}

	e.classifier = NewClassifier(cfg.InlineTags)
	e.isolator = NewIsolator(cfg.DoNotTranslate, cfg.IDLength, e.genID, e.log)
	e.segmenter = NewSegmenter(e.classifier, cfg.IDLength, e.genID, e.log)
	e.merger = NewMerger(e.log)
	e.validator = NewValidator(e.log)

	if e.intermediateDir != "" {
		_ = os.MkdirAll(e.intermediateDir, 0o755)
	}
	if e.targetDir != "" {
		_ = os.MkdirAll(e.targetDir, 0o755)
	}
	return e
}

// SourceLang returns the source language tag.
func (e *Engine) SourceLang() string { return e.sourceLang }

// TargetLang returns the target language tag.
func (e *Engine) TargetLang() string { return e.targetLang }

// Parse converts a source XML file into translation-ready artifacts: a
// skeleton document, an ordered segments listing, a minimal document with
// its tag mapping, and a DNT mapping when do-not-translate tags matched.
func (e *Engine) Parse(xmlPath string) (*ParseResult, error) {
	xmlPath = resolve(xmlPath, e.sourceDir)
	e.log.Info().Str("path", xmlPath).Msg("start parse")

	doc, err := xmltree.ParseFile(xmlPath)
	if err != nil {
		return nil, &ParseError{Path: xmlPath, Message: "reading source document", Cause: err}
	}

	base := stem(xmlPath)
	baseDir := e.intermediateDir
	if baseDir == "" {
		baseDir = filepath.Dir(xmlPath)
	}

	res := &ParseResult{
		SkeletonPath: filepath.Join(baseDir, base+".skeleton.xml"),
		SegmentsPath: filepath.Join(baseDir, fmt.Sprintf("%s.%s_segments.json", base, e.sourceLang)),
		MinimalPath:  filepath.Join(baseDir, base+".minimal.xml"),
		MappingPath:  filepath.Join(baseDir, base+".tag_mappings.txt"),
		DNTPath:      filepath.Join(baseDir, base+".dnt.json"),
	}

	// Isolation must run before segmentation so no DNT tag ever appears in
	// extracted segment markup.
	dntMapping := e.isolator.Isolate(doc)
	if len(dntMapping) > 0 {
		data, err := json.MarshalIndent(dntMapping, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding DNT mapping: %w", err)
		}
		if err := os.WriteFile(res.DNTPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing DNT mapping: %w", err)
		}
		e.log.Info().Str("path", res.DNTPath).Msg("DNT mapping written")
	}

	res.Segments = e.segmenter.Segment(doc)

	if doc.Declaration == "" {
		doc.EnsureDeclaration("")
	}
	if err := doc.WriteFile(res.SkeletonPath); err != nil {
		return nil, fmt.Errorf("writing skeleton: %w", err)
	}
	if err := os.WriteFile(res.SegmentsPath, EncodeSegments(res.Segments, e.sourceLang), 0o644); err != nil {
		return nil, fmt.Errorf("writing segments: %w", err)
	}

	minimal, phMapping := e.minimizer.Minimize(doc)
	if err := minimal.WriteFile(res.MinimalPath); err != nil {
		return nil, fmt.Errorf("writing minimal document: %w", err)
	}
	if err := os.WriteFile(res.MappingPath, phMapping.Encode(), 0o644); err != nil {
		return nil, fmt.Errorf("writing tag mapping: %w", err)
	}

	e.log.Info().
		Int("segments", len(res.Segments)).
		Int("placeholders", len(phMapping)).
		Str("skeleton", res.SkeletonPath).
		Msg("end parse")
	return res, nil
}

// Integrate produces a translated document from a translations JSON file
// via the direct path: entries are applied onto the skeleton, segment ids
// are stripped and DNT content is restored. Empty skeletonPath and
// outputPath select the conventional locations.
func (e *Engine) Integrate(translationsPath, skeletonPath, outputPath string) (string, error) {
	translationsPath = resolve(translationsPath, e.intermediateDir)
	e.log.Info().Str("path", translationsPath).Msg("start integrate")

	data, err := os.ReadFile(translationsPath)
	if err != nil {
		return "", fmt.Errorf("reading translations: %w", err)
	}
	entries, err := DecodeTranslations(data, e.targetLang)
	if err != nil {
		return "", fmt.Errorf("decoding translations: %w", err)
	}

	if skeletonPath == "" {
		base := translationsBase(translationsPath, e.targetLang)
		dir := e.intermediateDir
		if dir == "" {
			dir = filepath.Dir(translationsPath)
		}
		skeletonPath = filepath.Join(dir, base+".skeleton.xml")
	} else {
		skeletonPath = resolve(skeletonPath, e.intermediateDir)
	}
	base := strings.TrimSuffix(stem(skeletonPath), ".skeleton")

	skeleton, err := xmltree.ParseFile(skeletonPath)
	if err != nil {
		return "", &ParseError{Path: skeletonPath, Message: "reading skeleton", Cause: err}
	}

	reint := NewReintegrator(e.log)
	skipped := reint.Apply(skeleton, entries)
	if len(skipped) > 0 {
		e.log.Warn().Int("skipped", len(skipped)).Msg("entries without matching segment")
	}
	StripSegmentIDs(skeleton)

	if err := e.restoreDNT(skeleton, filepath.Dir(skeletonPath), base); err != nil {
		return "", err
	}
	e.applyLanguageAttrs(skeleton)

	if outputPath == "" {
		outDir := e.targetDir
		if outDir == "" {
			outDir = filepath.Dir(skeletonPath)
		}
		outputPath = filepath.Join(outDir, base+".xml")
	} else {
		outputPath = resolve(outputPath, e.targetDir)
	}

	skeleton.EnsureDeclaration("utf-8")
	if err := skeleton.WriteFile(outputPath); err != nil {
		return "", fmt.Errorf("writing integrated document: %w", err)
	}
	e.log.Info().Str("path", outputPath).Msg("end integrate")
	return outputPath, nil
}

// IntegrateMinimal reintegrates a translated minimal document via the
// structural-alignment path and validates the result against the source.
func (e *Engine) IntegrateMinimal(minimalPath string) (string, *Report, error) {
	minimalPath = resolve(minimalPath, e.intermediateDir)
	e.log.Info().Str("path", minimalPath).Msg("start integrate from minimal")

	base := stem(minimalPath)
	if i := strings.Index(base, ".minimal"); i >= 0 {
		base = base[:i]
	}

	baseDir := e.intermediateDir
	if baseDir == "" {
		baseDir = filepath.Dir(minimalPath)
	}
	mappingPath := filepath.Join(baseDir, base+".tag_mappings.txt")
	skeletonPath := filepath.Join(baseDir, base+".skeleton.xml")

	srcDir := e.sourceDir
	if srcDir == "" {
		srcDir = filepath.Dir(minimalPath)
	}
	sourcePath := filepath.Join(srcDir, base+".xml")

	minimal, err := xmltree.ParseFile(minimalPath)
	if err != nil {
		return "", nil, &ParseError{Path: minimalPath, Message: "reading minimal document", Cause: err}
	}
	mappingData, err := os.ReadFile(mappingPath)
	if err != nil {
		return "", nil, fmt.Errorf("reading tag mapping: %w", err)
	}
	e.merger.ReverseMinimal(minimal, ParsePlaceholderMapping(mappingData))

	skeleton, err := xmltree.ParseFile(skeletonPath)
	if err != nil {
		return "", nil, &ParseError{Path: skeletonPath, Message: "reading skeleton", Cause: err}
	}
	if err := e.merger.Merge(minimal, skeleton); err != nil {
		return "", nil, err
	}

	StripSegmentIDs(skeleton)
	if err := e.restoreDNT(skeleton, baseDir, base); err != nil {
		return "", nil, err
	}
	e.applyLanguageAttrs(skeleton)

	outDir := e.targetDir
	if outDir == "" {
		outDir = baseDir
	}
	outputPath := filepath.Join(outDir, base+".xml")

	skeleton.EnsureDeclaration("utf-8")
	if err := skeleton.WriteFile(outputPath); err != nil {
		return "", nil, fmt.Errorf("writing integrated document: %w", err)
	}

	report := e.Validate(sourcePath, outputPath)
	e.log.Info().Str("path", outputPath).Msg("end integrate from minimal")
	return outputPath, report, nil
}

// Validate checks structural fidelity of a translated file against its
// source, locating the skeleton in the intermediate directory.
func (e *Engine) Validate(srcPath, tgtPath string) *Report {
	srcPath = resolve(srcPath, e.sourceDir)
	tgtPath = resolve(tgtPath, e.targetDir)

	skelDir := e.intermediateDir
	if skelDir == "" {
		skelDir = filepath.Dir(tgtPath)
	}
	skeletonPath := filepath.Join(skelDir, stem(srcPath)+".skeleton.xml")

	return e.validator.ValidateFiles(srcPath, tgtPath, skeletonPath)
}

// DummyTranslation writes a fake translation file where each segment is
// prefixed "[<target-lang>_<n>] ", so the workflow can be exercised without
// a translation provider.
func (e *Engine) DummyTranslation(segmentsPath, outputPath string) (string, error) {
	segmentsPath = resolve(segmentsPath, e.intermediateDir)
	outputPath = resolve(outputPath, e.intermediateDir)

	data, err := os.ReadFile(segmentsPath)
	if err != nil {
		return "", fmt.Errorf("reading segments: %w", err)
	}
	segments, err := DecodeSegments(data, e.sourceLang)
	if err != nil {
		return "", fmt.Errorf("decoding segments: %w", err)
	}

	entries := make([]TranslationEntry, 0, len(segments))
	for i, seg := range segments {
		entries = append(entries, TranslationEntry{
			ID:   seg.ID,
			Text: fmt.Sprintf("[%s_%d] %s", e.targetLang, i+1, seg.Source),
		})
	}
	if err := os.WriteFile(outputPath, EncodeTranslations(entries, e.targetLang), 0o644); err != nil {
		return "", fmt.Errorf("writing dummy translation: %w", err)
	}
	e.log.Info().Str("path", outputPath).Msg("dummy translation written")
	return outputPath, nil
}

// restoreDNT loads the DNT mapping for base and restores placeholders. A
// missing mapping file is recoverable: restoration falls back to the data
// embedded on the placeholder nodes.
func (e *Engine) restoreDNT(doc *xmltree.Document, dir, base string) error {
	mappingPath := filepath.Join(dir, base+".dnt.json")
	if _, err := os.Stat(mappingPath); err != nil {
		// The artifact may have been produced for a differently named
		// source; a single candidate in the directory is unambiguous.
		if cand, err := filepath.Glob(filepath.Join(dir, "*.dnt.json")); err == nil && len(cand) == 1 {
			mappingPath = cand[0]
		}
	}

	var mapping DNTMapping
	if data, err := os.ReadFile(mappingPath); err == nil {
		if err := json.Unmarshal(data, &mapping); err != nil {
			e.log.Warn().Str("path", mappingPath).Err(err).Msg("unreadable DNT mapping, using placeholder fallback")
			mapping = nil
		}
	}
	return e.isolator.Restore(doc, mapping)
}

// applyLanguageAttrs stamps xml:lang and dir on the root element when
// enabled.
func (e *Engine) applyLanguageAttrs(doc *xmltree.Document) {
	if !e.setLangAttrs {
		return
	}
	root := doc.Root()
	if root == nil {
		return
	}
	xmltree.SetAttr(root, "xml:lang", ToXMLLang(e.targetLang))
	if IsRTL(e.targetLang) {
		xmltree.SetAttr(root, "dir", "rtl")
	}
}

// resolve joins a bare filename with a base directory; absolute paths and
// paths with a directory component pass through.
func resolve(path, base string) string {
	if path == "" || filepath.IsAbs(path) || filepath.Dir(path) != "." {
		return path
	}
	if base != "" {
		return filepath.Join(base, path)
	}
	return path
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// translationsBase derives the artifact base name from a translations file
// name, stripping the ".<target-lang>_translated" convention when present.
func translationsBase(path, targetLang string) string {
	name := stem(path)
	suffix := "." + targetLang + "_translated"
	if strings.HasSuffix(name, suffix) {
		return strings.TrimSuffix(name, suffix)
	}
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
