// Package diagcli implements the blockdiag command: read a JSON diagram
// description, lay it out, route its connectors and write an SVG.
package diagcli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/blockdiag/desc"
	"oss.terrastruct.com/blockdiag/diagram"
	"oss.terrastruct.com/blockdiag/lib/log"
	"oss.terrastruct.com/blockdiag/lib/textmeasure"
	"oss.terrastruct.com/blockdiag/lib/xmain"
	"oss.terrastruct.com/blockdiag/renderers/diagsvg"
)

func Run(ctx context.Context, ms *xmain.State) error {
	ctx = log.WithDefault(ctx)
	padFlag, err := ms.Opts.Int64("BLOCKDIAG_PAD", "pad", "", 0, "pixels padded around the rendered diagram")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}

	var inputPath string
	var outputPath string
	switch len(ms.Opts.Flags.Args()) {
	case 0:
		help(ms)
		return nil
	case 1:
		inputPath = ms.Opts.Flags.Arg(0)
		if inputPath == "-" {
			outputPath = "-"
		} else {
			outputPath = renameExt(inputPath, ".svg")
		}
	case 2:
		inputPath = ms.Opts.Flags.Arg(0)
		outputPath = ms.Opts.Flags.Arg(1)
	default:
		return xmain.UsageErrorf("too many arguments passed")
	}
	if *padFlag < 0 {
		return xmain.UsageErrorf("--pad must be non-negative.\nYou provided: %d", *padFlag)
	}

	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}

	d, err := desc.Parse(input, nil)
	if err != nil {
		return err
	}

	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return err
	}

	rendered, renderErr := d.Render(ctx, ruler)
	if renderErr != nil {
		// Degraded shapes are already excluded from the output; report them
		// and still write what rendered.
		ms.Log.Error.Print(renderErr.Error())
	}

	out, err := diagsvg.Render(rendered, &diagsvg.RenderOpts{Pad: *padFlag})
	if err != nil {
		return err
	}

	err = ms.WritePath(outputPath, out)
	if err != nil {
		return err
	}
	if outputPath != "-" {
		ms.Log.Success.Printf("successfully rendered %s to %s", ms.HumanPath(inputPath), ms.HumanPath(outputPath))
	}
	if renderErr != nil {
		return xmain.ExitErrorf(1, "rendered with errors")
	}
	return nil
}

func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `Usage:
  %[1]s [--pad n] file.json [file.svg]

%[1]s renders a JSON block-diagram description to SVG. Pass - to read from
stdin or write to stdout.

Example diagram of a service talking to a database:

  {
    "shapes": [
      {"type": "vbox", "id": "a", "x": 0, "y": 0, "padding": 10,
       "children": [{"type": "text", "label": "svc-a"}]},
      {"type": "db", "id": "store", "x": 200, "y": 0}
    ],
    "connectors": [{"from": "a", "to": "store", "toMarker": "arrow"}]
  }

Flags:
%s
`, ms.Name, ms.Opts.Help())
}

// RegistryNames lists the marker names the stock catalog accepts, for help
// text and input validation by embedders.
func RegistryNames() []string {
	reg := diagram.DefaultRegistry()
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
