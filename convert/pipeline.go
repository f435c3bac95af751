package convert

import (
	"context"
	"log/slog"
	"slices"
)

// StageName identifies a stage of the conversion pipeline.
type StageName string

// Stages of [Default], in the order they run. The order is part of the
// contract:
//
//   - StageAssignTimes must precede StageAssign, which would otherwise
//     consume the times filter as an ordinary expression.
//   - The attribute and filter stages match {{ ... }} output tags and must
//     run before StagePlainVar normalizes them.
//   - StageCase and StageCapture run before the header and brace cleanup
//     stages so the tags they emit are cleaned too.
//   - StageDollarVar and StagePlainVar run last because every earlier stage
//     may introduce or leave behind one of the forms they normalize.
const (
	StageComment         StageName = "comment"
	StageAssignTimes     StageName = "assign-times"
	StageCustomAttribute StageName = "custom-attribute"
	StageCampaignName    StageName = "campaign-name"
	StageContentBlock    StageName = "content-block"
	StageSplitIndexed    StageName = "split-indexed"
	StageSplit           StageName = "split"
	StageTruncateIndexed StageName = "truncate-indexed"
	StageTruncate        StageName = "truncate"
	StageAssign          StageName = "assign"
	StageCase            StageName = "case"
	StageCapture         StageName = "capture"
	StageIfHeader        StageName = "if-header"
	StageForHeader       StageName = "for-header"
	StageInnerBraces     StageName = "inner-braces"
	StageAppendEmpty     StageName = "append-empty"
	StageBreak           StageName = "break"
	StageDollarVar       StageName = "dollar-var"
	StagePlainVar        StageName = "plain-var"
)

// Pipeline is an ordered list of stages applied as a left fold over the
// text.
type Pipeline []Stage

//nolint:gochecknoglobals
var defaultPipeline = Pipeline{
	TemplateStage(StageComment,
		`(?s)\{%-?\s*comment\s*-?%\}(.+?)\{%-?\s*endcomment\s*-?%\}`,
		`{# ${1} #}`),
	TemplateStage(StageAssignTimes,
		`\{%\s*assign\s+(\w+)\s*=\s*(\d+)\s*\|\s*times:\s*(\d+)\s*%\}`,
		`{% set ${1} = ${2} * ${3} %}`),
	TemplateStage(StageCustomAttribute,
		`\{\{\s*custom_attribute\.\$\{(\w+)\}\s*\}\}`,
		`{{ UserAttribute['${1}'] }}`),
	TemplateStage(StageCampaignName,
		`\{\{\s*campaign\.\$\{name\}\s*\}\}`,
		`{{ CampaignAttribute['c_n'] }}`),
	TemplateStage(StageContentBlock,
		`\{\{\s*content_blocks\.\$\{(\w+)\}\s*\}\}`,
		`{{ ContentBlock['${1}'] }}`),
	TemplateStage(StageSplitIndexed,
		`\{\{\s*(\w+)\[(\d+)\]\s*\|\s*split\s*:\s*"([^"]+)"\s*\}\}`,
		`{{ ${1}[${2}].split("${3}") }}`),
	TemplateStage(StageSplit,
		`\{\{\s*(\w+)\s*\|\s*split\s*:\s*"([^"]+)"\s*\}\}`,
		`{{ ${1}.split("${2}") }}`),
	TemplateStage(StageTruncateIndexed,
		`\{\{\s*(\w+)\[(\d+)\]\s*\|\s*truncate\s*:\s*(\d+)\s*\}\}`,
		`{{ ${1}[${2}][:${3}] }}`),
	TemplateStage(StageTruncate,
		`\{\{\s*(\w+)\s*\|\s*truncate\s*:\s*(\d+)\s*\}\}`,
		`{{ ${1}[:${2}] }}`),
	TemplateStage(StageAssign,
		`\{%\s*assign\s+(\w+)\s*=\s*(.*?)\s*%\}`,
		`{% set ${1} = ${2} %}`),
	RewriteStage(StageCase,
		`(?s)\{%\s*case\s+(.*?)\s*%\}(.*?)\{%\s*endcase\s*%\}`,
		func(g []string) string { return TranslateCase(g[1], g[2]) }),
	RewriteStage(StageCapture,
		`(?s)\{%\s*capture\s+(\w+)\s*%\}(.*?)\{%\s*endcapture\s*%\}`,
		func(g []string) string { return TranslateCapture(g[1], g[2]) }),
	RewriteStage(StageIfHeader,
		`\{%\s*(if|elif|elsif)\s+(.*?)\s*%\}`,
		rewriteIfHeader),
	RewriteStage(StageForHeader,
		`\{%\s*for\s+(.*?)\s+in\s+(.*?)\s*%\}`,
		rewriteForHeader),
	RewriteStage(StageInnerBraces,
		`(?s)\{%.*?%\}`,
		rewriteInnerBraces),
	TemplateStage(StageAppendEmpty,
		`\|\s*append:\s*""`,
		``),
	TemplateStage(StageBreak,
		`\{%\s*break\s*%\}`,
		``),
	TemplateStage(StageDollarVar,
		`\{\{\s*\$\{(\w+)\}\s*\}\}`,
		`{{ ${1} }}`),
	TemplateStage(StagePlainVar,
		`\{\{\s*(\w+)\s*\}\}`,
		`{{ ${1} }}`),
}

// Default returns a copy of the canonical Liquid to Jinja pipeline.
func Default() Pipeline {
	return slices.Clone(defaultPipeline)
}

// Names returns the stage names in order.
func (p Pipeline) Names() []StageName {
	names := make([]StageName, len(p))
	for i, s := range p {
		names[i] = s.Name
	}

	return names
}

// Lookup returns the index of the first stage with the given name.
func (p Pipeline) Lookup(name StageName) (int, bool) {
	i := slices.IndexFunc(p, func(s Stage) bool { return s.Name == name })

	return i, i >= 0
}

// Until returns the prefix of p ending with the named stage, or all of p if
// no stage has that name.
func (p Pipeline) Until(name StageName) Pipeline {
	if i, ok := p.Lookup(name); ok {
		return p[:i+1]
	}

	return p
}

// Step records the effect of one stage during [Pipeline.Trace].
type Step struct {
	Stage   StageName
	Matches int
	Output  string
}

// Changed reports whether the stage replaced anything.
func (s Step) Changed() bool { return s.Matches > 0 }

// Trace applies p to text and returns the output of every stage.
func (p Pipeline) Trace(text string) []Step {
	steps := make([]Step, 0, len(p))

	for _, s := range p {
		var n int

		text, n = s.Apply(text)
		steps = append(steps, Step{Stage: s.Name, Matches: n, Output: text})
	}

	return steps
}

// Apply folds text through every stage of p in order.
func (p Pipeline) Apply(ctx context.Context, text string, opts ...Option) string {
	o := makeOptions(opts...)

	for i, s := range p {
		var n int

		text, n = s.Apply(text)

		o.logger.TraceContext(ctx, "stage applied",
			slog.Int("index", i),
			slog.String("stage", string(s.Name)),
			slog.String("kind", s.Kind.String()),
			slog.Int("matches", n),
		)
	}

	return text
}
