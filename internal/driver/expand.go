package driver

import (
	"time"

	"stamp/internal/diag"
	"stamp/internal/gen"
	"stamp/internal/lexer"
	"stamp/internal/seq"
	"stamp/internal/source"
	"stamp/internal/token"
	"stamp/internal/tree"
)

// Options configures a single expansion run.
type Options struct {
	MaxDiagnostics int
	Cache          *DiskCache
	Sink           ProgressSink
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o Options) emit(evt Event) {
	if o.Sink != nil {
		o.Sink.OnEvent(evt)
	}
}

// FileResult is the outcome of expanding one file. Set is the FileSet the
// file was loaded into; diagnostics in Bag resolve against it.
type FileResult struct {
	Path   string
	FileID source.FileID
	Set    *source.FileSet
	Output string
	Bag    *diag.Bag
	// Cached reports that the output came from the disk cache without
	// re-expansion.
	Cached bool
}

// ExpandFile runs the whole per-file pipeline: load, lex, group, expand
// directives, print. Structural failures leave Output empty with the errors
// in Bag. A clean prior result for identical content is served from the
// disk cache when one is configured.
func ExpandFile(fs *source.FileSet, path string, opts Options) FileResult {
	start := time.Now()
	bag := diag.NewBag(opts.maxDiagnostics())
	res := FileResult{Path: path, Set: fs, Bag: bag}
	opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})

	id, err := fs.Load(path)
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.UnknownCode,
			Message:  "failed to load file: " + err.Error(),
		})
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}
	res.FileID = id
	file := fs.Get(id)

	if out, ok := opts.Cache.Lookup(file.Hash); ok {
		res.Output = out
		res.Cached = true
		opts.emit(Event{File: path, Stage: StageExpand, Status: StatusDone, Elapsed: time.Since(start)})
		return res
	}

	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Scan(file, lexer.Options{Reporter: reporter})
	stream, ok := tree.FromTokens(toks, reporter)
	if !ok || bag.HasErrors() {
		opts.emit(Event{File: path, Stage: StageParse, Status: StatusError, Elapsed: time.Since(start)})
		return res
	}

	opts.emit(Event{File: path, Stage: StageExpand, Status: StatusWorking})
	expanded := ExpandStream(stream, fs, reporter)
	res.Output = tree.Print(expanded)

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	} else if !bag.HasWarnings() {
		// only clean results are worth replaying from the cache
		_ = opts.Cache.Store(file.Hash, res.Output)
	}
	opts.emit(Event{File: path, Stage: StageExpand, Status: status, Elapsed: time.Since(start)})
	return res
}

// ExpandStream rewrites one stream, expanding every directive it finds:
// seq(...) invocations, derive attributes, and sorted validation. Groups are
// recursed so directives work at any nesting depth. A failed invocation
// contributes no output tokens; the rest of the stream is unaffected.
func ExpandStream(s tree.Stream, fs *source.FileSet, reporter diag.Reporter) tree.Stream {
	out := make(tree.Stream, 0, len(s))
	i := 0
	for i < len(s) {
		// seq invocation: the ident immediately followed by a paren group
		if tree.IsIdent(s[i], "seq") && i+1 < len(s) {
			if g, ok := s[i+1].(tree.Group); ok && g.Delim == tree.Paren {
				if spec, ok := seq.ParseSpec(g.Stream, g.Sp, reporter); ok {
					out = append(out, seq.Expand(spec, reporter)...)
				}
				i += 2
				continue
			}
		}

		if tree.Is(s[i], token.Hash) {
			if item, ok := gen.ReadItem(s, i, reporter); ok {
				out = append(out, expandItem(item, fs, reporter)...)
				i = item.End
				continue
			}
		}

		if g, ok := s[i].(tree.Group); ok {
			g.Stream = ExpandStream(g.Stream, fs, reporter)
			out = append(out, g)
			i++
			continue
		}

		out = append(out, s[i])
		i++
	}
	return out
}

// expandItem re-emits one attributed item: directive attributes are consumed
// (running their generator or validator), everything else passes through
// untouched. Generated companions follow the item they derive from.
func expandItem(item *gen.Item, fs *source.FileSet, reporter diag.Reporter) tree.Stream {
	var out tree.Stream
	var companions tree.Stream
	for _, a := range item.Attrs {
		switch a.Name {
		case "derive":
			handled := false
			if a.Derives("Builder") {
				handled = true
				if g, ok := gen.Builder(item, fs, reporter); ok {
					companions = append(companions, g...)
				}
			}
			if a.Derives("Debug") {
				handled = true
				if g, ok := gen.Debug(item, fs, reporter); ok {
					companions = append(companions, g...)
				}
			}
			if !handled {
				out = append(out, a.Tokens...)
			}
		case "sorted":
			gen.Sorted(item, reporter)
		default:
			out = append(out, a.Tokens...)
		}
	}

	// directives inside the item body (nested sorted matches) still expand
	body := item.Tokens
	if n := len(body); n > 0 {
		if g, ok := body[n-1].(tree.Group); ok {
			g.Stream = ExpandStream(g.Stream, fs, reporter)
			body = append(append(tree.Stream{}, body[:n-1]...), g)
		}
	}
	out = append(out, body...)
	return append(out, companions...)
}
