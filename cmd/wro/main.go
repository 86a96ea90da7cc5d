// Command wro merges and processes resource groups defined in a YAML
// model file and writes the resulting artifacts.
//
// Usage:
//
//	wro -model wro.yaml -root ./static -request core.css?minimize=false
//
// With -out the artifact is written to a fingerprint-versioned file in
// that directory; otherwise content goes to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/valery1707/wro4j/config"
	"github.com/valery1707/wro4j/locator"
	"github.com/valery1707/wro4j/manager"
	"github.com/valery1707/wro4j/naming"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "wro:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("wro", flag.ContinueOnError)
	modelPath := fs.String("model", "wro.yaml", "path to the YAML group model")
	root := fs.String("root", ".", "directory resolved against resource uris")
	request := fs.String("request", "", "request path, e.g. core.css?minimize=false")
	outDir := fs.String("out", "", "write a versioned artifact into this directory instead of stdout")
	debug := fs.Bool("debug", false, "verbose processing diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *request == "" {
		return fmt.Errorf("missing -request")
	}

	logger := zap.NewNop()
	if *debug {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync()
	}

	locators, err := locator.NewSimpleFactory(locator.NewFSLocator(os.DirFS(*root)))
	if err != nil {
		return err
	}

	holder := config.NewHolder()
	holder.Set(config.NewContext(config.Config{
		Debug:                  *debug,
		IgnoreMissingResources: true,
	}))

	mgr, err := manager.NewInjectorBuilder().
		WithModelFactory(config.NewModelFactory(*modelPath)).
		WithLocatorFactory(locators).
		WithNamingStrategy(naming.Fingerprint{}).
		WithContextResolver(holder.Resolver()).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	entry, err := mgr.ProcessRequest(*request)
	if err != nil {
		return err
	}

	if *outDir == "" {
		_, err = io.WriteString(stdout, entry.Content)
		return err
	}

	requestFile, _, _ := strings.Cut(*request, "?")
	name := mgr.VersionedName(filepath.Base(requestFile), entry)
	target := filepath.Join(*outDir, name)
	if err := os.WriteFile(target, []byte(entry.Content), 0o644); err != nil {
		return err
	}
	fmt.Fprintln(stdout, target)
	return nil
}
