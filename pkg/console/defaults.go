package console

import (
	"cmdwire/pkg/invoke"
)

// InferDefaults maps the declared parameter defaults of a handler onto the
// arguments and options of def. A parameter matches an argument or option
// whose name equals the parameter name, its hyphenated form ("dryRun" gives
// "dry-run") or agrees with it once both are normalized. Arguments are keyed
// by name and options by "--name", the keys Definition.SetDefault accepts.
// Parameters without a match are skipped.
//
// InferDefaults only reads def.
func InferDefaults(def *Definition, params []invoke.Parameter) map[string]any {
	inferred := make(map[string]any)
	for _, p := range params {
		if !p.HasDefault || !p.Named() {
			continue
		}
		if arg := matchArgument(def, p.Name); arg != nil {
			inferred[arg.Name] = p.Default
			continue
		}
		if opt := matchOption(def, p.Name); opt != nil {
			inferred["--"+opt.Name] = p.Default
		}
	}
	return inferred
}

func matchArgument(def *Definition, param string) *Argument {
	if arg := def.Argument(param); arg != nil {
		return arg
	}
	if arg := def.Argument(invoke.HyphenateName(param)); arg != nil {
		return arg
	}
	for _, arg := range def.Arguments() {
		if invoke.NormalizeName(arg.Name) == invoke.NormalizeName(param) {
			return arg
		}
	}
	return nil
}

func matchOption(def *Definition, param string) *Option {
	if opt := def.Option(param); opt != nil {
		return opt
	}
	if opt := def.Option(invoke.HyphenateName(param)); opt != nil {
		return opt
	}
	for _, opt := range def.Options() {
		if invoke.NormalizeName(opt.Name) == invoke.NormalizeName(param) {
			return opt
		}
	}
	return nil
}

// applyInferredDefaults sets inferred defaults on def. Defaults the target
// cannot hold, such as a default for a required argument, are dropped.
func applyInferredDefaults(def *Definition, inferred map[string]any) {
	for key, value := range inferred {
		_ = def.SetDefault(key, value)
	}
}
