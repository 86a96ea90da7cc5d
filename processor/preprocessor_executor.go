package processor

import (
	"bytes"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/valery1707/wro4j/config"
	"github.com/valery1707/wro4j/injector"
	"github.com/valery1707/wro4j/locator"
	"github.com/valery1707/wro4j/model"
)

// PreProcessorExecutor runs one resource's content through the active
// pre-processor chain.
//
// Its collaborators (processor registry, locator factory, context) are
// field-injected; construct it empty and let the injector wire it.
type PreProcessorExecutor struct {
	processors Factory
	locators   locator.Factory
	context    config.ReadOnlyContext
	logger     *zap.Logger
}

// NewPreProcessorExecutor returns an executor logging through logger
// (nil means no logging).
func NewPreProcessorExecutor(logger *zap.Logger) *PreProcessorExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreProcessorExecutor{logger: logger}
}

// Requirements implements injector.Injectable.
func (e *PreProcessorExecutor) Requirements() []injector.Key {
	return []injector.Key{
		injector.KeyProcessorsFactory,
		injector.KeyLocatorFactory,
		injector.KeyContext,
	}
}

// Assign implements injector.Injectable.
func (e *PreProcessorExecutor) Assign(key injector.Key, value any) error {
	var err error
	switch key {
	case injector.KeyProcessorsFactory:
		e.processors, err = injector.As[Factory](key, value)
	case injector.KeyLocatorFactory:
		e.locators, err = injector.As[locator.Factory](key, value)
	case injector.KeyContext:
		e.context, err = injector.As[config.ReadOnlyContext](key, value)
	default:
		err = injector.UnboundKeyError{Key: key}
	}
	return err
}

// Execute applies the active pre-processor chain to the resource and
// returns the transformed content.
//
// An unreadable resource is downgraded to empty content and a warning
// while IgnoreMissingResources is on (the default): one bad resource
// must not fail the whole group. A failing processor propagates to the
// caller untouched; the merge engine wraps it.
func (e *PreProcessorExecutor) Execute(res *model.Resource, minimize bool) (string, error) {
	if res == nil {
		return "", model.ErrNilResource
	}

	chain := preChain(e.processors.PreProcessors(), res.Type, minimize)

	content, readErr := e.readContent(res.URI)
	if readErr != nil {
		if !e.ignoreMissing() {
			return "", readErr
		}
		e.logger.Warn("invalid resource found", zap.String("resource", res.String()), zap.Error(readErr))
	}
	if len(chain) == 0 || readErr != nil {
		return content, nil
	}

	var input io.Reader = strings.NewReader(content)
	var output bytes.Buffer
	for _, p := range chain {
		output.Reset()
		e.logger.Debug("applying preProcessor", zap.String("resource", res.URI))
		if err := p.Process(*res, input, &output); err != nil {
			return "", err
		}
		input = strings.NewReader(output.String())
	}
	return output.String(), nil
}

func (e *PreProcessorExecutor) readContent(uri string) (string, error) {
	rc, err := e.locators.Locate(uri)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (e *PreProcessorExecutor) ignoreMissing() bool {
	if e.context == nil {
		return true
	}
	return e.context.Config().IgnoreMissingResources
}
