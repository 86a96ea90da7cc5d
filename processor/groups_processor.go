package processor

import (
	"bytes"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/valery1707/wro4j/injector"
	"github.com/valery1707/wro4j/model"
)

// GroupsProcessor is the merge engine: it filters resources by type
// across groups, pre-processes each in order, concatenates the results
// and runs the merged content through the post-processor chain.
//
// Like the executor it is wired by field injection.
type GroupsProcessor struct {
	preExecutor *PreProcessorExecutor
	processors  Factory
	logger      *zap.Logger
}

// NewGroupsProcessor returns a merge engine logging through logger (nil
// means no logging).
func NewGroupsProcessor(logger *zap.Logger) *GroupsProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupsProcessor{logger: logger}
}

// Requirements implements injector.Injectable.
func (g *GroupsProcessor) Requirements() []injector.Key {
	return []injector.Key{
		injector.KeyPreProcessorExecutor,
		injector.KeyProcessorsFactory,
	}
}

// Assign implements injector.Injectable.
func (g *GroupsProcessor) Assign(key injector.Key, value any) error {
	var err error
	switch key {
	case injector.KeyPreProcessorExecutor:
		g.preExecutor, err = injector.As[*PreProcessorExecutor](key, value)
	case injector.KeyProcessorsFactory:
		g.processors, err = injector.As[Factory](key, value)
	default:
		err = injector.UnboundKeyError{Key: key}
	}
	return err
}

// Process merges and post-processes all resources of the given type
// across groups.
//
// Output is deterministic: group iteration order, then resource
// declaration order, concatenated with no separators. Resources of
// other types are excluded, not transformed. Any stage failure aborts
// the whole request and surfaces as a single MergeError.
func (g *GroupsProcessor) Process(groups []model.Group, t model.ResourceType, minimize bool) (string, error) {
	if groups == nil {
		return "", ErrNilGroups
	}
	if t == model.AnyType {
		return "", ErrNoType
	}

	var filtered []model.Resource
	for _, group := range groups {
		filtered = append(filtered, group.Filter(t)...)
	}

	merged, err := g.preProcessAndMerge(filtered, minimize)
	if err != nil {
		return "", MergeError{Err: err}
	}
	result, err := g.PostProcess(t, merged, minimize)
	if err != nil {
		return "", MergeError{Err: err}
	}
	return result, nil
}

// preProcessAndMerge pre-processes each resource in order and
// concatenates the results.
func (g *GroupsProcessor) preProcessAndMerge(resources []model.Resource, minimize bool) (string, error) {
	var merged strings.Builder
	for i := range resources {
		g.logger.Debug("merging resource", zap.String("resource", resources[i].String()))
		content, err := g.preExecutor.Execute(&resources[i], minimize)
		if err != nil {
			return "", err
		}
		merged.WriteString(content)
	}
	return merged.String(), nil
}

// PostProcess runs the merged content through the active post-processor
// chain for the type. With an empty chain the content passes through
// unchanged.
func (g *GroupsProcessor) PostProcess(t model.ResourceType, content string, minimize bool) (string, error) {
	chain := postChain(g.processors.PostProcessors(), t, minimize)
	if len(chain) == 0 {
		return content, nil
	}

	var input io.Reader = strings.NewReader(content)
	var output bytes.Buffer
	for _, p := range chain {
		output.Reset()
		g.logger.Debug("applying postProcessor")
		if err := p.Process(input, &output); err != nil {
			return "", err
		}
		input = strings.NewReader(output.String())
	}
	return output.String(), nil
}
