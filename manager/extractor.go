package manager

import (
	"errors"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/valery1707/wro4j/model"
)

// ErrBadRequestPath is returned when a request path cannot be mapped to
// a (group, type, minimize) triple.
var ErrBadRequestPath = errors.New("manager: cannot extract group from request path")

// GroupRequest is one decoded processing request.
type GroupRequest struct {
	Group    string
	Type     model.ResourceType
	Minimize bool
}

// GroupExtractor decodes serving-layer request paths into processing
// requests.
type GroupExtractor interface {
	Extract(requestPath string) (GroupRequest, error)
}

// DefaultGroupExtractor maps "dir/core.css?minimize=false" to
// (core, css, false). Minimize defaults to true when absent.
type DefaultGroupExtractor struct{}

// Extract implements GroupExtractor.
func (DefaultGroupExtractor) Extract(requestPath string) (GroupRequest, error) {
	rest, query, _ := strings.Cut(requestPath, "?")
	base := path.Base(rest)
	ext := path.Ext(base)
	if ext == "" || base == ext {
		return GroupRequest{}, ErrBadRequestPath
	}
	t, ok := model.ParseResourceType(ext)
	if !ok {
		return GroupRequest{}, ErrBadRequestPath
	}

	minimize := true
	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return GroupRequest{}, ErrBadRequestPath
		}
		if raw := values.Get("minimize"); raw != "" {
			minimize, err = strconv.ParseBool(raw)
			if err != nil {
				return GroupRequest{}, ErrBadRequestPath
			}
		}
	}

	return GroupRequest{
		Group:    strings.TrimSuffix(base, ext),
		Type:     t,
		Minimize: minimize,
	}, nil
}
